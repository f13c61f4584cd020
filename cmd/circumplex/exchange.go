package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/exchange"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newExportCommand() *cobra.Command {
	var (
		filter tracker.Filter
		format = exchange.FormatJSON
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export logged emotions as JSON, CSV or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				entries, err := svc.Entries(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("svc.Entries() > %w", err)
				}

				var buf bytes.Buffer
				if err := exchange.Export(&buf, entriesOf(entries), format); err != nil {
					return fmt.Errorf("exchange.Export() > %w", err)
				}
				if output == "-" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}

				path := output
				if path == "" {
					path = exchange.FileName(format, time.Now())
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("os.MkdirAll() > %w", err)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), path)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	cmd.Flags().Var(&format, "format", "export format: json, csv or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default emotion-log-<date>.<format>)")
	return cmd
}

func newImportCommand() *cobra.Command {
	var format exchange.Format

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge entries from a JSON or YAML export into the log",
		Long:  "Merge entries from a JSON or YAML export. Entries whose timestamp is already logged are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				f, err := exchange.ParseFormat(filepath.Ext(path))
				if err != nil {
					return fmt.Errorf("cannot tell the format of %s, use --format: %w", path, err)
				}
				format = f
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", path, err)
			}
			entries, err := exchange.ParseImport(data, format)
			if err != nil {
				return fmt.Errorf("exchange.ParseImport() > %w", err)
			}

			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				result, err := svc.Import(cmd.Context(), entries)
				if err != nil {
					return fmt.Errorf("svc.Import() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries, skipped %d duplicates.\n", result.Added, result.Skipped)
				return nil
			})
		},
	}
	cmd.Flags().Var(&format, "format", "import format: json or yaml (default from the file extension)")
	return cmd
}
