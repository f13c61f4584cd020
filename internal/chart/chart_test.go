package chart

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

func TestCircumplex(t *testing.T) {
	entries := []emotionlog.Entry{
		{Emotion: "Excited", Valence: 0.8, Arousal: 0.8, Timestamp: "2025-01-03T00:00:00.000Z"},
		{Emotion: "Sad", Valence: -0.8, Arousal: -0.8, Timestamp: "2025-01-02T00:00:00.000Z"},
		{Emotion: "Happy", Valence: 0.4, Arousal: 0.5, Timestamp: "2025-01-01T00:00:00.000Z"},
	}

	scatter := Circumplex(entries)
	require.Len(t, scatter.MultiSeries, 4)

	counts := map[string]int{}
	for _, s := range scatter.MultiSeries {
		data, ok := s.Data.([]opts.ScatterData)
		require.True(t, ok)
		counts[s.Name] = len(data)
	}
	assert.Equal(t, map[string]int{
		"Positive Active":   2,
		"Negative Active":   0,
		"Negative Inactive": 1,
		"Positive Inactive": 0,
	}, counts)
}

func TestTimeline(t *testing.T) {
	entries := []emotionlog.Entry{
		{Emotion: "Excited", Valence: 0.8, Arousal: 0.8, Timestamp: "2025-01-03T00:00:00.000Z"},
		{Emotion: "Broken", Valence: 0, Arousal: 0, Timestamp: "not a time"},
		{Emotion: "Sad", Valence: -0.8, Arousal: -0.8, Timestamp: "2025-01-02T00:00:00.000Z"},
	}

	line := Timeline(entries)
	require.Len(t, line.MultiSeries, 2)
	valence, ok := line.MultiSeries[0].Data.([]opts.LineData)
	require.True(t, ok)
	require.Len(t, valence, 2)
	// oldest first
	assert.Equal(t, -0.8, valence[0].Value.([]interface{})[1])
	assert.Equal(t, 0.8, valence[1].Value.([]interface{})[1])
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []emotionlog.Entry{
		{Emotion: "Calm", Valence: 0.4, Arousal: -0.6, Timestamp: "2025-01-01T00:00:00.000Z"},
	}))
	html := buf.String()
	assert.Contains(t, html, "<html>")
	assert.Contains(t, html, "Emotion Circumplex")
	assert.Contains(t, html, "Valence and Arousal Over Time")
}
