package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/cli"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/playback"
	"github.com/at-ishikawa/circumplex/internal/recorder"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newRecordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Record emotions interactively with click, move and commit commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(cfg *config.Config, svc tracker.Service) error {
				level, err := recorder.ParseOptimizationLevel(cfg.Recorder.OptimizationLevel)
				if err != nil {
					return err
				}
				recorderCLI := cli.NewRecorderCLI(svc, cmd.InOrStdin(), cmd.OutOrStdout(),
					recorder.WithOptimizationLevel(level),
				)
				return recorderCLI.Run(cmd.Context())
			})
		},
	}
}

func newReplayCommand() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "replay <index>",
		Short: "Replay the path of a logged emotion step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(cfg *config.Config, svc tracker.Service) error {
				entries, err := svc.Entries(cmd.Context(), tracker.Filter{})
				if err != nil {
					return fmt.Errorf("svc.Entries() > %w", err)
				}
				if index >= len(entries) {
					return fmt.Errorf("entry %d of %d: %w", index, len(entries), emotionlog.ErrIndexOutOfRange)
				}

				if !cmd.Flags().Changed("delay") {
					delay = time.Duration(cfg.Playback.StepDelayMS) * time.Millisecond
				}
				printer := cli.NewPrinter(cmd.OutOrStdout())
				err = playback.Play(cmd.Context(), replayPath(entries[index].Entry), delay, printer.PrintStep)
				if err != nil && errors.Is(err, context.Canceled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Replay stopped.")
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", playback.DefaultStepDelay, "pause between steps (defaults to playback.step_delay_ms)")
	return cmd
}

// replayPath is the recorded path, or the start and end points of entries
// logged without one.
func replayPath(e emotionlog.Entry) []affect.Position {
	if e.HasPath() {
		return e.Path
	}
	end := affect.FromValenceArousal(affect.ValenceArousal{Valence: e.Valence, Arousal: e.Arousal})
	if !e.IsTransition() {
		return []affect.Position{end}
	}
	start := affect.FromValenceArousal(affect.ValenceArousal{Valence: *e.StartValence, Arousal: *e.StartArousal})
	return []affect.Position{start, end}
}
