package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/card2video/internal/director"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags
	var export string

	cmd := &cobra.Command{
		Use:   "timeline [episode-file]",
		Short: "Show the frame windows of every scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ep, _, err := ctx.loadEpisode(args)
			if err != nil {
				return err
			}
			tl, err := director.NewTimeline(cfg, len(ep.Texts))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, timelineTable(tl, ep.Texts))
			fmt.Fprintf(out, "\n%d frames, %.2fs at %d fps", tl.TotalFrames(), tl.TotalDuration, tl.FPS)
			if tail := tl.TailFrames(); tail > 0 {
				fmt.Fprintf(out, ", %d blank tail frames", tail)
			}
			fmt.Fprintln(out)

			if export != "" {
				if err := director.WritePlan(director.NewPlan(tl, ep.Number, ep.Texts), export); err != nil {
					return fmt.Errorf("export plan: %w", err)
				}
				fmt.Fprintf(out, "plan written to %s\n", export)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&export, "export", "", "Write the frame plan to a YAML file")
	return cmd
}

func timelineTable(tl *director.Timeline, texts []string) string {
	windows := tl.Windows()
	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		caption := ""
		if w.Scene < len(texts) {
			caption = truncate(texts[w.Scene], 40)
		}
		rows = append(rows, []string{
			strconv.Itoa(w.Scene + 1),
			strconv.Itoa(w.Start),
			strconv.Itoa(w.FadeInEnd),
			strconv.Itoa(w.HoldEnd),
			strconv.Itoa(w.End),
			caption,
		})
	}
	return renderTable(
		[]string{"Scene", "Start", "Fade in end", "Hold end", "End", "Caption"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
