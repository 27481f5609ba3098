package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/episode"
	"github.com/ivlev/card2video/internal/logging"
)

type commandContext struct {
	configFlag *string
	logLevel   *string
	logFormat  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevel, logFormat *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		logLevel:   logLevel,
		logFormat:  logFormat,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevel != nil && *c.logLevel != "" {
			cfg.LogLevel = *c.logLevel
		}
		if c.logFormat != nil && *c.logFormat != "" {
			cfg.LogFormat = *c.logFormat
		}
		cfg.BuildVersion = version
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Writer: os.Stderr,
		})
	})
	return c.logger, c.loggerErr
}

// loadEpisode reads the episode named in args, or the newest record in the
// episodes directory when none is given.
func (c *commandContext) loadEpisode(args []string) (*episode.Episode, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	path := ""
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}
	if path == "" {
		path, err = episode.FindLatest(cfg.EpisodesDir)
		if err != nil {
			return nil, "", fmt.Errorf("no episode given and none found in %s: %w", cfg.EpisodesDir, err)
		}
	}
	ep, err := episode.Load(path)
	if err != nil {
		return nil, path, err
	}
	return ep, path, nil
}
