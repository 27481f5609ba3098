package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// Each worker keeps roughly this many frame-sized buffers alive at once:
// the canvas, the sparkle layer, the output frame and the PNG stream.
const buffersPerWorker = 4

// RecommendedWorkers bounds the requested worker count by CPU count and by
// the memory available for frame buffers of frameBytes each. requested <= 0
// means one per CPU.
func RecommendedWorkers(requested int, frameBytes uint64) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil && frameBytes > 0 {
		// leave half of the available memory to the rest of the system
		budget := vm.Available / 2
		if byMemory := int(budget / (frameBytes * buffersPerWorker)); byMemory < workers {
			workers = byMemory
		}
	}

	return max(1, workers)
}

// MemorySummary describes host memory for the performance report.
func MemorySummary() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.1f GiB available of %.1f GiB (%.0f%% used)",
		float64(vm.Available)/(1<<30), float64(vm.Total)/(1<<30), vm.UsedPercent)
}

// HeapInUse reports the Go heap currently in use, in MiB.
func HeapInUse() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.HeapInuse) / (1 << 20)
}
