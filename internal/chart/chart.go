// Package chart renders the emotion log as interactive ECharts HTML.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

var quadrantColors = map[affect.Quadrant]string{
	affect.QuadrantPositiveActive:   "#f5b800",
	affect.QuadrantNegativeActive:   "#e5484d",
	affect.QuadrantNegativeInactive: "#3e63dd",
	affect.QuadrantPositiveInactive: "#30a46c",
}

// Circumplex plots every entry at its valence/arousal with one series per quadrant.
func Circumplex(entries []emotionlog.Entry) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Emotion Circumplex",
			Subtitle: fmt.Sprintf("%d entries", len(entries)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Valence",
			Min:  -1,
			Max:  1,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Arousal",
			Min:  -1,
			Max:  1,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	byQuadrant := make(map[affect.Quadrant][]opts.ScatterData, len(affect.Quadrants))
	for _, e := range entries {
		q := e.Quadrant()
		byQuadrant[q] = append(byQuadrant[q], opts.ScatterData{
			Name:  e.Emotion,
			Value: []interface{}{e.Valence, e.Arousal},
		})
	}
	for _, q := range affect.Quadrants {
		items := byQuadrant[q]
		if items == nil {
			items = make([]opts.ScatterData, 0)
		}
		scatter.AddSeries(string(q), items).SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{Color: quadrantColors[q]}),
		)
	}
	return scatter
}

// Timeline plots valence and arousal against entry time, oldest first.
// Entries with unparsable timestamps are skipped.
func Timeline(entries []emotionlog.Entry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Valence and Arousal Over Time",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  -1,
			Max:  1,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	valence := make([]opts.LineData, 0, len(entries))
	arousal := make([]opts.LineData, 0, len(entries))
	for _, e := range emotionlog.Chronological(entries) {
		ts, err := e.Time()
		if err != nil {
			continue
		}
		at := ts.UnixMilli()
		valence = append(valence, opts.LineData{Value: []interface{}{at, e.Valence}})
		arousal = append(arousal, opts.LineData{Value: []interface{}{at, e.Arousal}})
	}

	line.AddSeries("Valence", valence).
		AddSeries("Arousal", arousal).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

// Render writes an HTML page with both charts to w.
func Render(w io.Writer, entries []emotionlog.Entry) error {
	page := components.NewPage()
	page.PageTitle = "Emotion Log"
	page.AddCharts(Circumplex(entries), Timeline(entries))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("page.Render() > %w", err)
	}
	return nil
}
