package statistics

import (
	"errors"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

// trendThreshold is the slope per entry above which a trend is reported.
const trendThreshold = 0.05

var ErrNotEnoughHistory = errors.New("not enough history for analysis")

// Trend describes how valence and arousal move across the log.
type Trend struct {
	Count          int      `json:"count" yaml:"count"`
	AverageValence float64  `json:"averageValence" yaml:"averageValence"`
	AverageArousal float64  `json:"averageArousal" yaml:"averageArousal"`
	ValenceSlope   float64  `json:"valenceSlope" yaml:"valenceSlope"`
	ArousalSlope   float64  `json:"arousalSlope" yaml:"arousalSlope"`
	Interpretation []string `json:"interpretation" yaml:"interpretation"`
}

// AnalyzeTrend fits a least-squares line through valence and arousal against
// the entry's position in time. Entries are given newest first.
func AnalyzeTrend(entries []emotionlog.Entry) (Trend, error) {
	if len(entries) < 2 {
		return Trend{}, ErrNotEnoughHistory
	}

	ordered := emotionlog.Chronological(entries)
	xs := make([]float64, len(ordered))
	valences := make([]float64, len(ordered))
	arousals := make([]float64, len(ordered))
	for i, e := range ordered {
		xs[i] = float64(i)
		valences[i] = e.Valence
		arousals[i] = e.Arousal
	}

	trend := Trend{
		Count:          len(ordered),
		AverageValence: mean(valences),
		AverageArousal: mean(arousals),
		ValenceSlope:   slope(xs, valences),
		ArousalSlope:   slope(xs, arousals),
		Interpretation: []string{},
	}

	switch {
	case trend.ValenceSlope > trendThreshold:
		trend.Interpretation = append(trend.Interpretation, "Your emotions are becoming more positive over time.")
	case trend.ValenceSlope < -trendThreshold:
		trend.Interpretation = append(trend.Interpretation, "Your emotions are becoming more negative over time.")
	}
	switch {
	case trend.ArousalSlope > trendThreshold:
		trend.Interpretation = append(trend.Interpretation, "Your energy levels are increasing over time.")
	case trend.ArousalSlope < -trendThreshold:
		trend.Interpretation = append(trend.Interpretation, "Your energy levels are decreasing over time.")
	}
	return trend, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}
