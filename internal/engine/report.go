package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/card2video/internal/system"
)

// Stats are the phase timings of one render.
type Stats struct {
	Init    time.Duration
	Frames  time.Duration
	Encode  time.Duration
	Total   time.Duration
	Workers int
}

// FPS is the effective render rate over the whole run.
func (s Stats) FPS(frames int) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(frames) / s.Total.Seconds()
}

func (p *Project) writeReport(res *Result) {
	s := res.Stats
	w := p.Report
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Episode: %d | Frames: %d | Workers: %d\n"+
			"Total Time: %.2fs\n"+
			"Init (assets): %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Memory: %s | Heap: %.1f MiB\n"+
			"----------------------------\n",
		p.Config.BuildVersion, res.Episode.Number, res.Frames, s.Workers,
		s.Total.Seconds(), s.Init.Seconds(), s.Frames.Seconds(), s.Encode.Seconds(), s.FPS(res.Frames),
		system.MemorySummary(), system.HeapInUse(),
	)

	entry := fmt.Sprintf("[%s] Build: %s | Episode: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		res.Episode.Number,
		res.Frames,
		s.Total.Seconds(),
		s.Frames.Seconds(),
		s.Encode.Seconds(),
		s.FPS(res.Frames),
	)
	path := filepath.Join(p.Config.OutputDir, "benchmark.log")
	if err := appendLine(path, entry); err != nil {
		p.logger().Warn("failed to write benchmark log", slog.String("path", path), slog.Any("error", err))
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
