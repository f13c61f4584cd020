package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/cli"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newClassifyCommand() *cobra.Command {
	var valence, arousal float64

	cmd := &cobra.Command{
		Use:   "classify [x,y]",
		Short: "Show the emotion at a point of the plane",
		Long: "Show the emotion at a screen position (x,y between 0 and 1, y growing downwards)\n" +
			"or at --valence and --arousal between -1 and 1.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := cli.NewPrinter(cmd.OutOrStdout())
			byAffect := cmd.Flags().Changed("valence") || cmd.Flags().Changed("arousal")
			switch {
			case len(args) == 1 && byAffect:
				return fmt.Errorf("give either a position or --valence and --arousal, not both")
			case len(args) == 1:
				p, err := cli.ParsePosition(args[0])
				if err != nil {
					return err
				}
				printer.PrintReading(affect.Read(p))
			case byAffect:
				printer.PrintReading(affect.ReadValenceArousal(valence, arousal))
			default:
				return fmt.Errorf("a position or --valence and --arousal is required")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&valence, "valence", 0, "valence between -1 and 1")
	cmd.Flags().Float64Var(&arousal, "arousal", 0, "arousal between -1 and 1")
	return cmd
}

func newLogCommand() *cobra.Command {
	var (
		start, end positionValue
		via        positionsValue
		req        tracker.LogRequest
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an emotion, or a change from one emotion to another",
		Example: `  circumplex log --emotion calm --notes "after a walk"
  circumplex log --start 0.1,0.9 --via 0.5,0.5 --end 0.9,0.1 --tag work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Start = start.position
			req.End = end.position
			req.Path = via.positions
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				entry, err := svc.Log(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("svc.Log() > %w", err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintEntry(0, entry, collectionNames(cmd.Context(), svc))
				return nil
			})
		},
	}
	cmd.Flags().Var(&start, "start", "starting point as x,y")
	cmd.Flags().Var(&end, "end", "end point as x,y, turning the entry into a transition")
	cmd.Flags().Var(&via, "via", "intermediate path point as x,y (repeatable)")
	cmd.Flags().StringVar(&req.Emotion, "emotion", "", "standard emotion to start from instead of --start")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&req.Collection, "collection", "", "collection ID")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "tag (repeatable)")
	return cmd
}

func newListCommand() *cobra.Command {
	var filter tracker.Filter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged emotions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				entries, err := svc.Entries(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("svc.Entries() > %w", err)
				}
				collections, err := svc.Collections(cmd.Context())
				if err != nil {
					return fmt.Errorf("svc.Collections() > %w", err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintEntries(entries, collections)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	return cmd
}

func newEditCommand() *cobra.Command {
	var (
		start, end positionValue
		via        positionsValue
		emotion    string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the position or notes of a logged emotion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			req := tracker.EditRequest{
				Start:   start.position,
				End:     end.position,
				Path:    via.positions,
				Emotion: emotion,
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				entry, err := svc.Edit(cmd.Context(), index, req)
				if err != nil {
					return fmt.Errorf("svc.Edit() > %w", err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintEntry(index, entry, collectionNames(cmd.Context(), svc))
				return nil
			})
		},
	}
	cmd.Flags().Var(&start, "start", "new starting point as x,y")
	cmd.Flags().Var(&end, "end", "new end point as x,y")
	cmd.Flags().Var(&via, "via", "new intermediate path point as x,y (repeatable)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "standard emotion to start from instead of --start")
	cmd.Flags().StringVar(&notes, "notes", "", "replace the notes")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a logged emotion",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				if err := svc.Delete(cmd.Context(), index); err != nil {
					return fmt.Errorf("svc.Delete() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d.\n", index)
				return nil
			})
		},
	}
}

func newUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change to the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				undone, err := svc.Undo(cmd.Context())
				if err != nil {
					return fmt.Errorf("svc.Undo() > %w", err)
				}
				if !undone {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Undone.")
				return nil
			})
		},
	}
}

// collectionNames maps collection IDs to names. Lookup failures only cost
// the names, so they are ignored.
func collectionNames(ctx context.Context, svc tracker.Service) map[string]string {
	collections, err := svc.Collections(ctx)
	if err != nil {
		return nil
	}
	names := make(map[string]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}
	return names
}
