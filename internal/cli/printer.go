// Package cli renders tracker data in the terminal and hosts the interactive
// recorder.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/playback"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

const displayTimeLayout = "2006-01-02 15:04"

// Printer writes human-readable output, coloring labels by quadrant.
type Printer struct {
	w      io.Writer
	bold   *color.Color
	italic *color.Color
	faint  *color.Color

	quadrantColors map[affect.Quadrant]*color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		faint:  color.New(color.Faint),
		quadrantColors: map[affect.Quadrant]*color.Color{
			affect.QuadrantPositiveActive:   color.New(color.FgYellow, color.Bold),
			affect.QuadrantNegativeActive:   color.New(color.FgRed, color.Bold),
			affect.QuadrantNegativeInactive: color.New(color.FgBlue, color.Bold),
			affect.QuadrantPositiveInactive: color.New(color.FgGreen, color.Bold),
		},
	}
}

func (p *Printer) label(q affect.Quadrant, emoji, text string) string {
	c, ok := p.quadrantColors[q]
	if !ok {
		c = p.bold
	}
	if emoji == "" {
		return c.Sprint(text)
	}
	return emoji + " " + c.Sprint(text)
}

// PrintReading shows where a point sits on the circumplex.
func (p *Printer) PrintReading(r affect.Reading) {
	fmt.Fprintf(p.w, "%s (valence %+.2f, arousal %+.2f)\n",
		p.label(r.Quadrant, r.Emotion.Emoji, r.Emotion.Label), r.Valence, r.Arousal)
	fmt.Fprintf(p.w, "  %s, %s\n", r.Quadrant, p.italic.Sprint(r.Description))
}

// PrintEntry writes one entry on a single line.
func (p *Printer) PrintEntry(index int, e emotionlog.Entry, collections map[string]string) {
	when := e.Timestamp
	if t, err := e.Time(); err == nil {
		when = t.Local().Format(displayTimeLayout)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%3d  %s  %s (%+.2f, %+.2f)",
		index, p.faint.Sprint(when), p.label(e.Quadrant(), e.Emoji, e.Emotion), e.Valence, e.Arousal)
	if e.IsTransition() {
		startQuadrant := affect.QuadrantOf(*e.StartValence, *e.StartArousal)
		fmt.Fprintf(&b, " from %s", p.label(startQuadrant, e.StartEmoji, e.StartEmotion))
	}
	if e.HasPath() {
		fmt.Fprintf(&b, " via %d points", len(e.Path))
	}
	if e.Collection != "" {
		name := collections[e.Collection]
		if name == "" {
			name = e.Collection
		}
		fmt.Fprintf(&b, " @%s", name)
	}
	for _, t := range e.Tags {
		fmt.Fprintf(&b, " #%s", t)
	}
	if e.Notes != "" {
		fmt.Fprintf(&b, "\n     %s", p.italic.Sprint(e.Notes))
	}
	fmt.Fprintln(p.w, b.String())
}

// PrintEntries lists entries with their log indexes.
func (p *Printer) PrintEntries(entries []tracker.IndexedEntry, collections []journal.Collection) {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, "No emotions logged yet.")
		return
	}
	names := make(map[string]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}
	for _, ie := range entries {
		p.PrintEntry(ie.Index, ie.Entry, names)
	}
}

func (p *Printer) PrintSummary(s statistics.Summary) {
	fmt.Fprintf(p.w, "%s %d\n", p.bold.Sprint("Entries:"), s.Total)
	fmt.Fprintf(p.w, "%s %+.2f valence, %+.2f arousal\n", p.bold.Sprint("Average:"), s.AverageValence, s.AverageArousal)

	fmt.Fprintln(p.w, p.bold.Sprint("Quadrants:"))
	for _, q := range s.Quadrants {
		fmt.Fprintf(p.w, "  %s %d", p.label(q.Quadrant, q.Emoji, string(q.Quadrant)), q.Count)
		if len(q.Emotions) > 0 {
			fmt.Fprintf(p.w, " (%s)", strings.Join(q.Emotions, ", "))
		}
		fmt.Fprintln(p.w)
	}

	if len(s.TopEmotions) > 0 {
		fmt.Fprintln(p.w, p.bold.Sprint("Most frequent:"))
		for i, e := range s.TopEmotions {
			fmt.Fprintf(p.w, "  %d. %s %s x%d\n", i+1, e.Emoji, e.Emotion, e.Count)
		}
	}
	fmt.Fprintf(p.w, "\n%s\n", p.italic.Sprint(s.Insight))

	if len(s.RecentNotes) > 0 {
		fmt.Fprintln(p.w, p.bold.Sprint("\nRecent notes:"))
		for _, e := range s.RecentNotes {
			fmt.Fprintf(p.w, "  %s %s: %s\n", e.Emoji, e.Emotion, e.Notes)
		}
	}
}

func (p *Printer) PrintTrend(t statistics.Trend) {
	fmt.Fprintf(p.w, "%s %d entries\n", p.bold.Sprint("Trend over"), t.Count)
	fmt.Fprintf(p.w, "  valence slope %+.3f, arousal slope %+.3f\n", t.ValenceSlope, t.ArousalSlope)
	if len(t.Interpretation) == 0 {
		fmt.Fprintln(p.w, p.italic.Sprint("  Your emotions have been stable."))
		return
	}
	for _, line := range t.Interpretation {
		fmt.Fprintf(p.w, "  %s\n", p.italic.Sprint(line))
	}
}

func (p *Printer) PrintPeriods(r statistics.PeriodResult) {
	fmt.Fprintf(p.w, "%-8s %8s %9s %12s %8s %8s\n", "Month", "Entries", "Emotions", "Transitions", "Valence", "Arousal")
	for _, s := range r.Periods {
		fmt.Fprintf(p.w, "%-8s %8d %9d %12d %+8.2f %+8.2f\n",
			s.Period, s.EntriesCount, s.UniqueEmotions, s.Transitions, s.AverageValence, s.AverageArousal)
	}
	fmt.Fprintf(p.w, "%-8s %8d %9d %12d\n", "Total", r.Aggregate.EntriesCount, r.Aggregate.UniqueEmotions, r.Aggregate.Transitions)
}

func (p *Printer) PrintCollections(collections []journal.Collection) {
	if len(collections) == 0 {
		fmt.Fprintln(p.w, "No collections.")
		return
	}
	for _, c := range collections {
		fmt.Fprintf(p.w, "%s  %s\n", p.faint.Sprint(c.ID), c.Name)
	}
}

func (p *Printer) PrintTags(tags []string) {
	if len(tags) == 0 {
		fmt.Fprintln(p.w, "No tags.")
		return
	}
	for _, t := range tags {
		fmt.Fprintf(p.w, "#%s\n", t)
	}
}

// PrintStep writes one replayed path point.
func (p *Printer) PrintStep(s playback.Step) {
	q := affect.QuadrantOf(s.Affect.Valence, s.Affect.Arousal)
	fmt.Fprintf(p.w, "%3d  %s (%+.2f, %+.2f)\n", s.Index, p.label(q, s.Emotion.Emoji, s.Emotion.Label), s.Affect.Valence, s.Affect.Arousal)
}
