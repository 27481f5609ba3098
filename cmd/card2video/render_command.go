package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/engine"
	"github.com/ivlev/card2video/internal/system"
	"github.com/ivlev/card2video/internal/video"
)

// framePresets are the frame sizes the card layout fits into.
var framePresets = map[string][2]int{
	"9:16":     {1080, 1920},
	"9:16-720": {720, 1280},
	"4:5":      {1080, 1350},
}

func presetNames() string {
	names := make([]string, 0, len(framePresets))
	for name := range framePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

type renderFlags struct {
	outputDir   string
	audio       string
	encoder     string
	preset      string
	quality     int
	workers     int
	fps         int
	keepScratch bool
	stats       bool
}

// apply copies the flags the user set onto cfg.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("audio") {
		cfg.AudioPath = f.audio
	}
	if changed("encoder") {
		cfg.VideoEncoder = f.encoder
	}
	if changed("quality") {
		cfg.Quality = f.quality
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("fps") {
		cfg.FPS = f.fps
	}
	if changed("keep-scratch") {
		cfg.KeepScratchOnFailure = f.keepScratch
	}
	if changed("stats") {
		cfg.ShowStats = f.stats
	}
	if f.preset != "" {
		size, ok := framePresets[f.preset]
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %s)", f.preset, presetNames())
		}
		cfg.Width, cfg.Height = size[0], size[1]
	}
	return nil
}

func (f *renderFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.preset, "preset", "", "Frame size preset: "+presetNames())
	flags.IntVar(&f.fps, "fps", 0, "Frames per second")
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [episode-file]",
		Short: "Render an episode into an MP4",
		Long: "Render an episode record into an MP4 video.\n\n" +
			"Without an argument the newest episode_*.json or episode_*.yaml in the\n" +
			"episodes directory is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			ep, path, err := ctx.loadEpisode(args)
			if err != nil {
				return err
			}
			logger.Info("episode loaded",
				slog.String("path", path),
				slog.Int("episode", ep.Number),
				slog.Int("scenes", len(ep.Texts)),
				slog.String("version", cfg.BuildVersion),
			)

			system.InitResourceLimits(logger)

			project := engine.NewProject(cfg, ep, video.NewFFmpegEncoder(logger), logger)
			project.Progress = os.Stderr
			project.Report = cmd.OutOrStdout()

			res, err := project.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for the finished video")
	cmd.Flags().StringVar(&flags.audio, "audio", "", "Background audio file or directory (newest file is used)")
	cmd.Flags().StringVar(&flags.encoder, "encoder", "", "H.264 encoder, or auto to probe ffmpeg")
	cmd.Flags().IntVarP(&flags.quality, "quality", "q", 0, "Quality: CRF for x264, CQ for nvenc, 100 kbit/s units for videotoolbox")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Frame workers (0 picks from CPU and memory)")
	cmd.Flags().BoolVar(&flags.keepScratch, "keep-scratch", false, "Keep rendered frames when the render fails")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print a performance report and append it to benchmark.log")

	return cmd
}
