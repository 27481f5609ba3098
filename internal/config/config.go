package config

import "path/filepath"

// Config holds process-wide render settings. It is fixed before a render
// starts and never mutated by the engine.
type Config struct {
	Width         int     `yaml:"width" toml:"width"`
	Height        int     `yaml:"height" toml:"height"`
	FPS           int     `yaml:"fps" toml:"fps"`
	TotalDuration float64 `yaml:"total_duration" toml:"total_duration"` // 0 = scenes * scene_duration
	SceneDuration float64 `yaml:"scene_duration" toml:"scene_duration"`
	FadeDuration  float64 `yaml:"fade_duration" toml:"fade_duration"`
	LineStagger   float64 `yaml:"line_stagger" toml:"line_stagger"` // delay between caption lines, seconds
	LineRise      float64 `yaml:"line_rise" toml:"line_rise"`       // caption entrance offset, pixels

	SparkleCount int `yaml:"sparkle_count" toml:"sparkle_count"`
	BeanCount    int `yaml:"bean_count" toml:"bean_count"`

	AudioPath   string `yaml:"audio_path" toml:"audio_path"`
	EpisodesDir string `yaml:"episodes_dir" toml:"episodes_dir"`
	OutputDir   string `yaml:"output_dir" toml:"output_dir"`
	ScratchRoot string `yaml:"scratch_root" toml:"scratch_root"`

	KeepScratchOnFailure bool `yaml:"keep_scratch_on_failure" toml:"keep_scratch_on_failure"`

	Workers      int    `yaml:"workers" toml:"workers"`
	VideoEncoder string `yaml:"video_encoder" toml:"video_encoder"`
	Quality      int    `yaml:"quality" toml:"quality"`

	RegularFont string `yaml:"regular_font" toml:"regular_font"`
	BoldFont    string `yaml:"bold_font" toml:"bold_font"`

	BannerText    string `yaml:"banner_text" toml:"banner_text"`
	WatermarkText string `yaml:"watermark_text" toml:"watermark_text"`
	WatermarkQR   string `yaml:"watermark_qr" toml:"watermark_qr"` // optional URL encoded as a QR code

	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`

	ShowStats    bool   `yaml:"show_stats" toml:"show_stats"`
	BuildVersion string `yaml:"-" toml:"-"`
}

// Default returns the settings of the vertical 1080x1920 short.
func Default() *Config {
	return &Config{
		Width:         1080,
		Height:        1920,
		FPS:           30,
		SceneDuration: 12,
		FadeDuration:  1,
		LineStagger:   0.08,
		LineRise:      15,
		SparkleCount:  60,
		BeanCount:     28,
		AudioPath:     filepath.Join("assets", "background_music.mp3"),
		EpisodesDir:   "output",
		OutputDir:     "output",
		ScratchRoot:   filepath.Join("output", "_frames"),
		VideoEncoder:  "libx264",
		Quality:       20,
		BannerText:    "caffeine chronicles",
		WatermarkText: "@CaffeineChronicles",
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Duration returns the length of the video for the given number of scenes.
func (c *Config) Duration(scenes int) float64 {
	if c.TotalDuration > 0 {
		return c.TotalDuration
	}
	return float64(scenes) * c.SceneDuration
}

// HoldDuration is the fully visible part of a scene between its fades.
func (c *Config) HoldDuration() float64 {
	return c.SceneDuration - 2*c.FadeDuration
}
