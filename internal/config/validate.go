package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a configuration that cannot produce a video.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate ensures the configuration is usable. It is called before any
// render state is built.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateFrame(),
		c.validateTiming(),
		c.validateParticles(),
		c.validatePaths(),
	)
}

func (c *Config) validateFrame() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("width/height", "must be positive, got %dx%d", c.Width, c.Height)
	}
	// yuv420p needs both dimensions divisible by two
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return invalid("width/height", "must be even, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return invalid("fps", "must be positive, got %d", c.FPS)
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.SceneDuration <= 0 {
		return invalid("scene_duration", "must be positive, got %g", c.SceneDuration)
	}
	if c.FadeDuration < 0 {
		return invalid("fade_duration", "must not be negative, got %g", c.FadeDuration)
	}
	if c.HoldDuration() < 0 {
		return invalid("fade_duration", "%gs leaves no hold window in a %gs scene", c.FadeDuration, c.SceneDuration)
	}
	if c.TotalDuration < 0 {
		return invalid("total_duration", "must not be negative, got %g", c.TotalDuration)
	}
	if c.LineStagger < 0 || c.LineRise < 0 {
		return invalid("line_stagger/line_rise", "must not be negative")
	}
	return nil
}

func (c *Config) validateParticles() error {
	if c.SparkleCount < 0 {
		return invalid("sparkle_count", "must not be negative, got %d", c.SparkleCount)
	}
	if c.BeanCount < 0 {
		return invalid("bean_count", "must not be negative, got %d", c.BeanCount)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return invalid("output_dir", "must be set")
	}
	if strings.TrimSpace(c.ScratchRoot) == "" {
		return invalid("scratch_root", "must be set")
	}
	return nil
}
