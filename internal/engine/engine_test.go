package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/episode"
	"github.com/ivlev/card2video/internal/logging"
	"github.com/ivlev/card2video/internal/scratch"
	"github.com/ivlev/card2video/internal/video"
)

// fakeEncoder checks the frames it is given and writes a placeholder video.
type fakeEncoder struct {
	jobs   []video.Job
	frames int
	err    error
}

func (f *fakeEncoder) Encode(_ context.Context, job video.Job) error {
	f.jobs = append(f.jobs, job)
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(job.FramePattern), "frame_*.png"))
	f.frames = len(matches)
	if err := os.WriteFile(job.Output, []byte("mp4"), 0644); err != nil {
		return err
	}
	if f.err != nil {
		return &video.EncodeError{Output: job.Output, Err: f.err, Log: "conversion failed"}
	}
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Width, cfg.Height = 90, 160
	cfg.FPS = 10
	cfg.SceneDuration = 1
	cfg.FadeDuration = 0.25
	cfg.SparkleCount = 10
	cfg.BeanCount = 4
	cfg.Workers = 2
	cfg.AudioPath = filepath.Join(root, "missing.mp3")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.ScratchRoot = filepath.Join(root, "output", "_frames")
	return cfg
}

func testEpisode() *episode.Episode {
	return &episode.Episode{
		Number: 9,
		Kind:   episode.KindFact,
		Header: "DID YOU KNOW THAT...",
		Texts:  []string{"Coffee cherries are fruit.", "Brazil grows the most coffee."},
	}
}

func scratchEntries(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	entries, err := os.ReadDir(cfg.ScratchRoot)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	enc := &fakeEncoder{}
	p := NewProject(cfg, testEpisode(), enc, nil)

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if p.State() != StateDone {
		t.Errorf("state = %s, want done", p.State())
	}
	if res.Frames != 20 || enc.frames != 20 {
		t.Errorf("expected 20 frames, result %d, encoder saw %d", res.Frames, enc.frames)
	}
	if want := filepath.Join(cfg.OutputDir, "episode_0009.mp4"); res.Output != want {
		t.Errorf("output = %s, want %s", res.Output, want)
	}
	if _, err := os.Stat(res.Output); err != nil {
		t.Errorf("video missing: %v", err)
	}

	job := enc.jobs[0]
	if job.AudioPath != "" {
		t.Errorf("missing audio should select silence, got %q", job.AudioPath)
	}
	if job.Duration != 2 || job.FPS != 10 || job.Encoder != "libx264" {
		t.Errorf("unexpected job %+v", job)
	}
	if filepath.Base(job.FramePattern) != "frame_%05d.png" {
		t.Errorf("unexpected pattern %s", job.FramePattern)
	}
	if dirs := scratchEntries(t, cfg); len(dirs) != 0 {
		t.Errorf("scratch should be removed after success, found %v", dirs)
	}
	if res.Episode.Texts[0] != "Coffee cherries are fruit." {
		t.Error("record should be returned unchanged")
	}
}

func TestRunWarnsOnEmptyAudioDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.AudioPath = t.TempDir()
	enc := &fakeEncoder{}

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &logs})
	if err != nil {
		t.Fatal(err)
	}
	p := NewProject(cfg, testEpisode(), enc, logger)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if enc.jobs[0].AudioPath != "" {
		t.Errorf("expected a silent track, got %q", enc.jobs[0].AudioPath)
	}
	if !strings.Contains(logs.String(), "audio directory is empty") {
		t.Errorf("expected a warning about the empty audio directory, got %q", logs.String())
	}
}

func TestRunEncoderFailure(t *testing.T) {
	cfg := testConfig(t)
	enc := &fakeEncoder{err: errors.New("exit status 1")}
	p := NewProject(cfg, testEpisode(), enc, nil)

	_, err := p.Run(context.Background())
	var encErr *video.EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *video.EncodeError, got %v", err)
	}
	if p.State() != StateFailed {
		t.Errorf("state = %s, want failed", p.State())
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "episode_0009.mp4")); !os.IsNotExist(err) {
		t.Error("partial video should be removed")
	}
	if dirs := scratchEntries(t, cfg); len(dirs) != 0 {
		t.Errorf("scratch should be removed, found %v", dirs)
	}
}

func TestRunKeepsScratchOnFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeepScratchOnFailure = true
	p := NewProject(cfg, testEpisode(), &fakeEncoder{err: errors.New("boom")}, nil)

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	dirs := scratchEntries(t, cfg)
	if len(dirs) != 1 {
		t.Fatalf("expected kept scratch dir, found %v", dirs)
	}
	frames, _ := filepath.Glob(filepath.Join(cfg.ScratchRoot, dirs[0], "frame_*.png"))
	if len(frames) != 20 {
		t.Errorf("kept scratch should hold 20 frames, got %d", len(frames))
	}
}

func TestRunScratchRootUnavailable(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.ScratchRoot = filepath.Join(blocker, "_frames")
	enc := &fakeEncoder{}

	_, err := NewProject(cfg, testEpisode(), enc, nil).Run(context.Background())
	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResourceError, got %v", err)
	}
	if len(enc.jobs) != 0 {
		t.Error("encoder should not run")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "episode_0009.mp4")); !os.IsNotExist(err) {
		t.Error("no video should be created")
	}
}

func TestRunRejectsConcurrentRender(t *testing.T) {
	cfg := testConfig(t)
	held, err := scratch.Acquire(cfg.ScratchRoot, 9)
	if err != nil {
		t.Fatal(err)
	}
	defer held.Release(false)

	_, err = NewProject(cfg, testEpisode(), &fakeEncoder{}, nil).Run(context.Background())
	if !errors.Is(err, scratch.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunCanceled(t *testing.T) {
	cfg := testConfig(t)
	enc := &fakeEncoder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProject(cfg, testEpisode(), enc, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(enc.jobs) != 0 {
		t.Error("encoder should not run after cancellation")
	}
}

func TestRunValidatesConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.FadeDuration = 0.75

	_, err := NewProject(cfg, testEpisode(), &fakeEncoder{}, nil).Run(context.Background())
	var verr *config.ValidationError
	if !errors.As(err, &verr) || verr.Field != "fade_duration" {
		t.Fatalf("expected fade_duration validation error, got %v", err)
	}
}

func TestRunShowStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.ShowStats = true
	cfg.BuildVersion = "test-build"
	var report bytes.Buffer
	p := NewProject(cfg, testEpisode(), &fakeEncoder{}, nil)
	p.Report = &report

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report.String(), "PERFORMANCE REPORT") || !strings.Contains(report.String(), "test-build") {
		t.Errorf("unexpected report: %s", report.String())
	}
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "benchmark.log"))
	if err != nil {
		t.Fatalf("benchmark.log missing: %v", err)
	}
	if !strings.Contains(string(data), "Episode: 9 | Frames: 20") {
		t.Errorf("unexpected benchmark entry: %s", data)
	}
}

func TestFramePattern(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{1, "frame_%05d.png"},
		{1080, "frame_%05d.png"},
		{100000, "frame_%05d.png"},
		{100001, "frame_%06d.png"},
	}
	for _, tt := range tests {
		if got := FramePattern(tt.total); got != tt.want {
			t.Errorf("FramePattern(%d) = %s, want %s", tt.total, got, tt.want)
		}
		if name := fmt.Sprintf(FramePattern(tt.total), 0); !strings.HasPrefix(name, "frame_0") {
			t.Errorf("unexpected name %s", name)
		}
	}
}
