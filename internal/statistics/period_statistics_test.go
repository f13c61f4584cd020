package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

func TestCalculatePeriods(t *testing.T) {
	transition := timed("2025-02-10T08:00:00.000Z", 0.6, 0.4)
	transition.Emotion = "Happy"
	transition.StartEmotion = "Sad"
	transition.StartValence = emotionlog.Float(-0.6)
	transition.StartArousal = emotionlog.Float(-0.6)

	entries := []emotionlog.Entry{
		transition,
		{Emotion: "Happy", Valence: 0.2, Arousal: 0.2, Timestamp: "2025-02-01T00:00:00.000Z"},
		{Emotion: "Sad", Valence: -0.5, Arousal: -0.5, Timestamp: "2025-01-20T00:00:00.000Z"},
		{Emotion: "Calm", Valence: 0.5, Arousal: -0.3, Timestamp: "2024-12-31T23:59:59.000Z"},
		{Emotion: "Broken", Timestamp: "not a time"},
	}

	tests := []struct {
		name              string
		year              int
		month             int
		expectedPeriods   []PeriodStatistics
		expectedAggregate AggregateStatistics
	}{
		{
			name: "no filter",
			expectedPeriods: []PeriodStatistics{
				{Period: "2025-02", EntriesCount: 2, UniqueEmotions: 1, Transitions: 1, AverageValence: 0.4, AverageArousal: 0.3},
				{Period: "2025-01", EntriesCount: 1, UniqueEmotions: 1, AverageValence: -0.5, AverageArousal: -0.5},
				{Period: "2024-12", EntriesCount: 1, UniqueEmotions: 1, AverageValence: 0.5, AverageArousal: -0.3},
			},
			expectedAggregate: AggregateStatistics{EntriesCount: 4, UniqueEmotions: 3, Transitions: 1},
		},
		{
			name: "year filter",
			year: 2025,
			expectedPeriods: []PeriodStatistics{
				{Period: "2025-02", EntriesCount: 2, UniqueEmotions: 1, Transitions: 1, AverageValence: 0.4, AverageArousal: 0.3},
				{Period: "2025-01", EntriesCount: 1, UniqueEmotions: 1, AverageValence: -0.5, AverageArousal: -0.5},
			},
			expectedAggregate: AggregateStatistics{EntriesCount: 3, UniqueEmotions: 2, Transitions: 1},
		},
		{
			name:  "year and month filter",
			year:  2025,
			month: 1,
			expectedPeriods: []PeriodStatistics{
				{Period: "2025-01", EntriesCount: 1, UniqueEmotions: 1, AverageValence: -0.5, AverageArousal: -0.5},
			},
			expectedAggregate: AggregateStatistics{EntriesCount: 1, UniqueEmotions: 1},
		},
		{
			name:              "nothing matches",
			year:              2023,
			expectedPeriods:   []PeriodStatistics{},
			expectedAggregate: AggregateStatistics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePeriods(entries, tt.year, tt.month)
			assert.Equal(t, tt.expectedPeriods, got.Periods)
			assert.Equal(t, tt.expectedAggregate, got.Aggregate)
		})
	}
}
