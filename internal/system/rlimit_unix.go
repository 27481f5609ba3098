//go:build darwin || linux

package system

import (
	"log/slog"
	"syscall"
)

// InitResourceLimits raises the open file limit so many workers can write
// frames at once.
func InitResourceLimits(logger *slog.Logger) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("failed to read open file limit", slog.Any("error", err))
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("failed to raise open file limit", slog.Any("error", err))
		return
	}
	logger.Debug("open file limit raised", slog.Uint64("limit", uint64(rLimit.Cur)))
}
