package engine

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

type progress interface {
	Add()
	Finish()
}

// newProgress shows a bar when w is a terminal and falls back to a log line
// every five seconds of video otherwise.
func newProgress(w io.Writer, total, fps int, logger *slog.Logger) progress {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return &barProgress{bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("rendering frames"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)}
	}
	return &logProgress{total: total, every: int64(max(1, fps*5)), logger: logger}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p *barProgress) Add()    { _ = p.bar.Add(1) }
func (p *barProgress) Finish() { _ = p.bar.Finish() }

type logProgress struct {
	done   atomic.Int64
	total  int
	every  int64
	logger *slog.Logger
}

func (p *logProgress) Add() {
	if n := p.done.Add(1); n%p.every == 0 {
		p.logger.Info("rendering frames", slog.Int64("done", n), slog.Int("total", p.total))
	}
}

func (p *logProgress) Finish() {}
