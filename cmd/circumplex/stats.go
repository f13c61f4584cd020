package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/cli"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newStatsCommand() *cobra.Command {
	var (
		filter      tracker.Filter
		top         int
		byMonth     bool
		year, month int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize logged emotions by quadrant and frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if (year != 0 || month != 0) && !byMonth {
				byMonth = true
			}

			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				printer := cli.NewPrinter(cmd.OutOrStdout())
				if byMonth {
					entries, err := svc.Entries(cmd.Context(), filter)
					if err != nil {
						return fmt.Errorf("svc.Entries() > %w", err)
					}
					printer.PrintPeriods(statistics.CalculatePeriods(entriesOf(entries), year, month))
					return nil
				}

				summary, err := svc.Summary(cmd.Context(), filter, top)
				if err != nil {
					return fmt.Errorf("svc.Summary() > %w", err)
				}
				printer.PrintSummary(summary)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	cmd.Flags().IntVar(&top, "top", statistics.DefaultTopN, "number of most frequent emotions to show")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "show statistics per month")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")
	return cmd
}

func newTrendCommand() *cobra.Command {
	var filter tracker.Filter

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show how valence and arousal change over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
				trend, err := svc.Trend(cmd.Context(), filter)
				if errors.Is(err, statistics.ErrNotEnoughHistory) {
					fmt.Fprintln(cmd.OutOrStdout(), "Log at least two emotions to see a trend.")
					return nil
				}
				if err != nil {
					return fmt.Errorf("svc.Trend() > %w", err)
				}
				cli.NewPrinter(cmd.OutOrStdout()).PrintTrend(trend)
				return nil
			})
		},
	}
	addFilterFlags(cmd.Flags(), &filter)
	return cmd
}

func entriesOf(indexed []tracker.IndexedEntry) []emotionlog.Entry {
	out := make([]emotionlog.Entry, len(indexed))
	for i, ie := range indexed {
		out[i] = ie.Entry
	}
	return out
}
