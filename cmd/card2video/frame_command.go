package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ivlev/card2video/internal/engine"
	"github.com/ivlev/card2video/internal/renderer"
	"github.com/ivlev/card2video/internal/system"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags
	var index int
	var out string

	cmd := &cobra.Command{
		Use:   "frame [episode-file]",
		Short: "Render a single frame to PNG",
		Args:  cobra.MaximumNArgs(1),
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
			ep, _, err := ctx.loadEpisode(args)
			if err != nil {
				return err
			}

			scene, err := engine.BuildScene(cfg, ep)
			if err != nil {
				return err
			}
			total := scene.Timeline.TotalFrames()
			if index < 0 || index >= total {
				return fmt.Errorf("frame %d out of range [0, %d)", index, total)
			}

			img, err := scene.Compositor.Compose(index)
			if err != nil {
				return err
			}
			defer system.PutImage(img)

			if out == "" {
				out = fmt.Sprintf("episode_%04d_frame_%05d.png", ep.Number, index)
			}
			if err := renderer.WritePNG(out, img); err != nil {
				return err
			}

			info := scene.Timeline.Scene(index)
			logger.Info("frame written",
				slog.String("path", out),
				slog.Int("frame", index),
				slog.Int("scene", info.Index),
				slog.Float64("card_opacity", info.CardOpacity),
				slog.Int("sparkles", scene.Sparkles.Visible(index)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&index, "frame", "f", 0, "Frame index")
	cmd.Flags().StringVar(&out, "out", "", "Output PNG path")

	return cmd
}
