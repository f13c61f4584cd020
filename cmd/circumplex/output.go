package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/chart"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/pdf"
	"github.com/at-ishikawa/circumplex/internal/report"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

const chartFileName = "emotion-chart.html"

func newChartCommand() *cobra.Command {
	var (
		filter tracker.Filter
		output string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write an HTML page plotting logged emotions on the circumplex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(cfg *config.Config, svc tracker.Service) error {
				entries, err := svc.Entries(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("svc.Entries() > %w", err)
				}

				path := output
				if path == "" {
					path = filepath.Join(cfg.Outputs.ChartDirectory, chartFileName)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("os.MkdirAll() > %w", err)
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", path, err)
				}
				defer func() {
					_ = f.Close()
				}()

				if err := chart.Render(f, entriesOf(entries)); err != nil {
					return fmt.Errorf("chart.Render() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <outputs.chart_directory>/"+chartFileName+")")
	return cmd
}

func newReportCommand() *cobra.Command {
	var (
		filter  tracker.Filter
		format  = reportFormatValue{format: report.FormatMarkdown}
		convert string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown or PDF report of logged emotions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if convert != "" {
				path, err := pdf.ConvertMarkdownToPDF(convert)
				if err != nil {
					return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			return withService(cmd.Context(), func(cfg *config.Config, svc tracker.Service) error {
				entries, err := svc.Entries(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("svc.Entries() > %w", err)
				}
				data, err := report.Build(entriesOf(entries), describeFilter(filter), time.Now())
				if err != nil {
					return fmt.Errorf("report.Build() > %w", err)
				}

				path, err := report.NewWriter(cfg.Templates.ReportTemplate).Save(cfg.Outputs.ReportDirectory, data, format.format)
				if err != nil {
					return fmt.Errorf("report.Save() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	cmd.Flags().Var(&format, "format", "report format: md or pdf")
	cmd.Flags().StringVar(&convert, "convert", "", "convert an existing Markdown report to PDF instead of writing a new one")
	return cmd
}

// describeFilter names the entries a filter selects, for report headings.
func describeFilter(f tracker.Filter) string {
	var parts []string
	if f.Days > 0 {
		parts = append(parts, fmt.Sprintf("the last %d days", f.Days))
	}
	if f.Collection != "" {
		parts = append(parts, "collection "+f.Collection)
	}
	if f.Tag != "" {
		parts = append(parts, "tag #"+f.Tag)
	}
	if len(parts) == 0 {
		return "all entries"
	}
	return strings.Join(parts, ", ")
}
