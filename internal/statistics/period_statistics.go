package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

// PeriodStatistics holds statistics for a time period
type PeriodStatistics struct {
	Period         string  `json:"period" yaml:"period"` // "2025-01"
	EntriesCount   int     `json:"entries" yaml:"entries"`
	UniqueEmotions int     `json:"uniqueEmotions" yaml:"uniqueEmotions"`
	Transitions    int     `json:"transitions" yaml:"transitions"` // entries recorded with a start emotion
	AverageValence float64 `json:"averageValence" yaml:"averageValence"`
	AverageArousal float64 `json:"averageArousal" yaml:"averageArousal"`
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	EntriesCount   int `json:"entries" yaml:"entries"`
	UniqueEmotions int `json:"uniqueEmotions" yaml:"uniqueEmotions"` // deduplicated across periods
	Transitions    int `json:"transitions" yaml:"transitions"`
}

// PeriodResult holds both per-period and aggregate statistics
type PeriodResult struct {
	Periods   []PeriodStatistics  `json:"periods" yaml:"periods"`
	Aggregate AggregateStatistics `json:"aggregate" yaml:"aggregate"`
}

// periodData tracks counts per period
type periodData struct {
	entries     int
	emotions    map[string]struct{}
	transitions int
	valenceSum  float64
	arousalSum  float64
}

// CalculatePeriods groups entries by month.
// It accepts optional year and month filters (0 means no filter).
// Entries whose timestamp cannot be parsed are skipped.
func CalculatePeriods(entries []emotionlog.Entry, year, month int) PeriodResult {
	stats := make(map[string]*periodData)
	globalEmotions := make(map[string]struct{})

	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}
		if !matchesFilter(t.Year(), int(t.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
		ensurePeriodExists(stats, period)

		data := stats[period]
		data.entries++
		data.emotions[e.Emotion] = struct{}{}
		data.valenceSum += e.Valence
		data.arousalSum += e.Arousal
		if e.IsTransition() {
			data.transitions++
		}
		globalEmotions[e.Emotion] = struct{}{}
	}

	return buildResult(stats, globalEmotions)
}

func ensurePeriodExists(stats map[string]*periodData, period string) {
	if stats[period] == nil {
		stats[period] = &periodData{
			emotions: make(map[string]struct{}),
		}
	}
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func buildResult(stats map[string]*periodData, globalEmotions map[string]struct{}) PeriodResult {
	periods := make([]PeriodStatistics, 0, len(stats))

	var totalEntries, totalTransitions int
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:         period,
			EntriesCount:   data.entries,
			UniqueEmotions: len(data.emotions),
			Transitions:    data.transitions,
			AverageValence: round2(data.valenceSum / float64(data.entries)),
			AverageArousal: round2(data.arousalSum / float64(data.entries)),
		})
		totalEntries += data.entries
		totalTransitions += data.transitions
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return PeriodResult{
		Periods: periods,
		Aggregate: AggregateStatistics{
			EntriesCount:   totalEntries,
			UniqueEmotions: len(globalEmotions),
			Transitions:    totalTransitions,
		},
	}
}
