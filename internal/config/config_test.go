package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.HoldDuration() != 10 {
		t.Errorf("expected 10s hold, got %f", cfg.HoldDuration())
	}
	if got := cfg.Duration(3); got != 36 {
		t.Errorf("expected 36s for 3 scenes, got %f", got)
	}
}

func TestExplicitTotalDuration(t *testing.T) {
	cfg := Default()
	cfg.TotalDuration = 35
	if got := cfg.Duration(3); got != 35 {
		t.Errorf("expected explicit 35s, got %f", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"fade too long", func(c *Config) { c.FadeDuration = 6.5 }, "fade_duration"},
		{"negative fade", func(c *Config) { c.FadeDuration = -1 }, "fade_duration"},
		{"zero scene", func(c *Config) { c.SceneDuration = 0 }, "scene_duration"},
		{"odd width", func(c *Config) { c.Width = 1081 }, "width/height"},
		{"zero height", func(c *Config) { c.Height = 0 }, "width/height"},
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"negative sparkles", func(c *Config) { c.SparkleCount = -1 }, "sparkle_count"},
		{"no output", func(c *Config) { c.OutputDir = " " }, "output_dir"},
		{"no scratch", func(c *Config) { c.ScratchRoot = "" }, "scratch_root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestFadeExactlyHalfScene(t *testing.T) {
	cfg := Default()
	cfg.SceneDuration = 2
	cfg.FadeDuration = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("2*fade == scene should be accepted: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	data := "fps: 24\nscene_duration: 8\nfade_duration: 0.5\nbanner_text: brew notes\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FPS != 24 || cfg.SceneDuration != 8 || cfg.FadeDuration != 0.5 {
		t.Errorf("unexpected timing: %+v", cfg)
	}
	if cfg.BannerText != "brew notes" {
		t.Errorf("expected banner override, got %q", cfg.BannerText)
	}
	if cfg.Width != 1080 {
		t.Errorf("unset fields should keep defaults, got width %d", cfg.Width)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	data := "width = 720\nheight = 1280\nkeep_scratch_on_failure = true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 720 || cfg.Height != 1280 {
		t.Errorf("expected 720x1280, got %dx%d", cfg.Width, cfg.Height)
	}
	if !cfg.KeepScratchOnFailure {
		t.Error("expected keep_scratch_on_failure to be set")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadEmptyPathAndEmptyFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.FPS != 30 {
		t.Fatalf("empty path should return defaults, got %+v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("empty yaml file should load: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "render.ini")); err == nil {
		t.Error("expected error for missing file")
	}
}
