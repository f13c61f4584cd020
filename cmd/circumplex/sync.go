package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/datasync"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newSyncCommand() *cobra.Command {
	var (
		dryRun         bool
		updateExisting bool
	)

	cmd := &cobra.Command{
		Use:       "sync <from> <to>",
		Short:     "Copy the journal between storage drivers (file, mysql)",
		Example:   "  circumplex sync file mysql --dry-run",
		Args:      cobra.MatchAll(cobra.ExactArgs(2), cobra.OnlyValidArgs),
		ValidArgs: []string{config.StorageDriverFile, config.StorageDriverMySQL},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == args[1] {
				return fmt.Errorf("source and destination are both %s", args[0])
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			src, closeSrc, err := tracker.OpenStore(cmd.Context(), withDriver(cfg, args[0]))
			if err != nil {
				return fmt.Errorf("open %s store: %w", args[0], err)
			}
			defer func() { _ = closeSrc() }()
			dst, closeDst, err := tracker.OpenStore(cmd.Context(), withDriver(cfg, args[1]))
			if err != nil {
				return fmt.Errorf("open %s store: %w", args[1], err)
			}
			defer func() { _ = closeDst() }()

			out := cmd.OutOrStdout()
			opts := datasync.SyncOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := datasync.NewSyncer(src, dst, out).Sync(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("sync journal: %w", err)
			}

			fmt.Fprintln(out, "\nSync Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Keys: %d new, %d updated, %d skipped, %d unchanged, %d missing\n",
				result.New, result.Updated, result.Skipped, result.Unchanged, result.Missing)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the destination")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Overwrite keys that already exist in the destination")
	return cmd
}

func withDriver(cfg *config.Config, driver string) *config.Config {
	c := *cfg
	c.Storage.Driver = driver
	return &c
}
