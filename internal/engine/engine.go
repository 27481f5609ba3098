package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/director"
	"github.com/ivlev/card2video/internal/effects"
	"github.com/ivlev/card2video/internal/episode"
	"github.com/ivlev/card2video/internal/logging"
	"github.com/ivlev/card2video/internal/renderer"
	"github.com/ivlev/card2video/internal/scratch"
	"github.com/ivlev/card2video/internal/system"
	"github.com/ivlev/card2video/internal/video"
)

// State is the phase a render is in.
type State int32

const (
	StateInit State = iota
	StateFrames
	StateEncode
	StateCleanup
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateFrames:
		return "frames"
	case StateEncode:
		return "encode"
	case StateCleanup:
		return "cleanup"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result describes a finished render.
type Result struct {
	Episode  *episode.Episode
	Output   string
	Frames   int
	Duration float64
	Stats    Stats
}

// Project renders one episode into one video.
type Project struct {
	Config  *config.Config
	Episode *episode.Episode
	Encoder video.Encoder
	Logger  *slog.Logger

	// Progress receives the progress bar when it is a terminal.
	Progress io.Writer
	// Report receives the performance report when show_stats is set.
	Report io.Writer

	state atomic.Int32
}

func NewProject(cfg *config.Config, ep *episode.Episode, enc video.Encoder, logger *slog.Logger) *Project {
	return &Project{
		Config:  cfg,
		Episode: ep,
		Encoder: enc,
		Logger:  logging.NewComponentLogger(logger, "engine"),
	}
}

// State returns the current phase.
func (p *Project) State() State {
	return State(p.state.Load())
}

func (p *Project) setState(s State) {
	p.state.Store(int32(s))
	p.logger().Debug("render state", slog.String("state", s.String()))
}

func (p *Project) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}

// Scene is everything needed to compose frames of one episode.
type Scene struct {
	Timeline   *director.Timeline
	Sparkles   *effects.SparkleField
	Beans      *effects.BeanField
	Assets     *renderer.Assets
	Compositor *renderer.Compositor
}

// BuildScene validates the inputs and builds the particles, sprites and
// timeline. The random source is seeded from the episode number so the
// same record always renders the same frames; beans are drawn first.
func BuildScene(cfg *config.Config, ep *episode.Episode) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ep.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(int64(ep.Number)))
	s := &Scene{
		Beans:    effects.NewBeanField(rng, cfg.BeanCount, cfg.Width, cfg.Height),
		Sparkles: effects.NewSparkleField(rng, cfg.SparkleCount, cfg.Width, cfg.Height, cfg.FPS),
	}

	fonts, err := renderer.LoadFonts(cfg.RegularFont, cfg.BoldFont)
	if err != nil {
		return nil, err
	}
	if s.Assets, err = renderer.NewAssets(cfg, ep, fonts, s.Beans); err != nil {
		return nil, err
	}
	if s.Timeline, err = director.NewTimeline(cfg, len(ep.Texts)); err != nil {
		return nil, err
	}
	if s.Compositor, err = renderer.NewCompositor(s.Assets, s.Sparkles, s.Timeline); err != nil {
		return nil, err
	}
	return s, nil
}

// FramePattern returns the printf pattern of frame file names for a video
// of total frames: at least five digits, more when needed.
func FramePattern(total int) string {
	digits := max(5, len(strconv.Itoa(max(0, total-1))))
	return fmt.Sprintf("frame_%%0%dd.png", digits)
}

// Run renders every frame, encodes the video and cleans up. The scratch
// directory is removed on success, and on failure unless
// keep_scratch_on_failure is set. No video is left behind on failure.
func (p *Project) Run(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	cfg, ep := p.Config, p.Episode
	log := p.logger().With(slog.Int("episode", ep.Number))

	p.setState(StateInit)
	defer func() {
		if err != nil {
			p.setState(StateFailed)
			log.Error("render failed", slog.Any("error", err))
		}
	}()

	scene, err := BuildScene(cfg, ep)
	if err != nil {
		return nil, err
	}
	total := scene.Timeline.TotalFrames()

	audio, err := system.ResolveAudio(cfg.AudioPath)
	switch {
	case errors.Is(err, system.ErrNoAudio):
		log.Warn("audio directory is empty, using a silent track", slog.String("audio_path", cfg.AudioPath))
		audio = ""
	case err != nil:
		return nil, &ResourceError{Op: "resolve audio", Path: cfg.AudioPath, Err: err}
	}
	p.checkAudio(ctx, log, audio, scene.Timeline.TotalDuration)

	encoderName := cfg.VideoEncoder
	if encoderName == "" || encoderName == "auto" {
		encoderName = system.GetBestH264Encoder(ctx, log)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, &ResourceError{Op: "create output dir", Path: cfg.OutputDir, Err: err}
	}
	dir, err := scratch.Acquire(cfg.ScratchRoot, ep.Number)
	if err != nil {
		return nil, &ResourceError{Op: "acquire scratch", Path: cfg.ScratchRoot, Err: err}
	}
	defer func() {
		keep := err != nil && cfg.KeepScratchOnFailure
		prev := p.State()
		p.setState(StateCleanup)
		if relErr := dir.Release(keep); relErr != nil {
			log.Warn("scratch cleanup failed", slog.String("dir", dir.Path), slog.Any("error", relErr))
		}
		if keep {
			log.Info("scratch kept for inspection", slog.String("dir", dir.Path))
		}
		if err == nil {
			p.setState(StateDone)
		} else {
			p.setState(prev)
		}
	}()

	workers := system.RecommendedWorkers(cfg.Workers, uint64(cfg.Width*cfg.Height*4))
	res = &Result{
		Episode:  ep,
		Output:   filepath.Join(cfg.OutputDir, ep.VideoName()),
		Frames:   total,
		Duration: scene.Timeline.TotalDuration,
	}
	res.Stats.Workers = workers
	res.Stats.Init = time.Since(start)

	size := scene.Compositor.Bounds().Size()
	log.Info("rendering frames",
		slog.Int("frames", total),
		slog.Int("scenes", scene.Timeline.Scenes),
		slog.Int("workers", workers),
		slog.String("size", fmt.Sprintf("%dx%d@%d", size.X, size.Y, cfg.FPS)),
		slog.String("scratch", dir.Path),
	)

	p.setState(StateFrames)
	framesStart := time.Now()
	pattern := FramePattern(total)
	if err := p.renderFrames(ctx, scene.Compositor, dir, pattern, total, workers); err != nil {
		return nil, err
	}
	res.Stats.Frames = time.Since(framesStart)

	p.setState(StateEncode)
	encodeStart := time.Now()
	job := video.Job{
		FramePattern: dir.File(pattern),
		FPS:          cfg.FPS,
		Duration:     res.Duration,
		AudioPath:    audio,
		Encoder:      encoderName,
		Quality:      cfg.Quality,
		Output:       res.Output,
	}
	if err := p.Encoder.Encode(ctx, job); err != nil {
		if rmErr := os.Remove(res.Output); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn("failed to remove partial output", slog.String("path", res.Output), slog.Any("error", rmErr))
		}
		return nil, fmt.Errorf("encode episode %d: %w", ep.Number, err)
	}
	res.Stats.Encode = time.Since(encodeStart)
	res.Stats.Total = time.Since(start)

	log.Info("video ready",
		slog.String("output", res.Output),
		slog.Duration("elapsed", res.Stats.Total),
		slog.String("fps", fmt.Sprintf("%.1f", res.Stats.FPS(total))),
	)
	if cfg.ShowStats {
		p.writeReport(res)
	}
	return res, nil
}

// renderFrames composes and writes frames on a bounded worker pool. Files
// carry their index so completion order does not matter. The first error
// cancels the remaining work.
func (p *Project) renderFrames(ctx context.Context, comp *renderer.Compositor, dir *scratch.Dir, pattern string, total, workers int) error {
	bar := newProgress(p.Progress, total, p.Config.FPS, p.logger())
	defer bar.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for f := 0; f < total; f++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := comp.Compose(f)
			if err != nil {
				return err
			}
			path := dir.File(fmt.Sprintf(pattern, f))
			err = renderer.WritePNG(path, img)
			system.PutImage(img)
			if err != nil {
				return &ResourceError{Op: "write frame", Path: path, Err: err}
			}
			bar.Add()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (p *Project) checkAudio(ctx context.Context, log *slog.Logger, audio string, duration float64) {
	if audio == "" {
		log.Info("no background audio, using a silent track", slog.String("audio_path", p.Config.AudioPath))
		return
	}
	length, err := system.GetAudioDuration(ctx, audio)
	if err != nil {
		log.Warn("could not probe background audio", slog.String("audio", audio), slog.Any("error", err))
		return
	}
	if length < duration {
		log.Debug("background audio will loop", slog.Float64("audio_seconds", length), slog.Float64("video_seconds", duration))
	}
}
