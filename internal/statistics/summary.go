// Package statistics computes read-side aggregates over the emotion log.
package statistics

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

// DefaultTopN is how many labels the summary ranks.
const DefaultTopN = 3

// minEntriesForInsight is the log size below which no insight is given.
const minEntriesForInsight = 3

const notEnoughEntriesInsight = "Log more emotions to receive personalized insights."

var quadrantInsights = map[affect.Quadrant]string{
	affect.QuadrantPositiveActive:   "Your emotions tend toward the positive-active quadrant, suggesting an energetic, optimistic state. Research shows this state can enhance creativity and problem-solving abilities.",
	affect.QuadrantNegativeActive:   "Your emotions frequently fall in the negative-active quadrant, indicating heightened stress or anxiety. Studies suggest mindfulness practices may help regulate these high-arousal negative states.",
	affect.QuadrantNegativeInactive: "Your emotions often register in the negative-inactive quadrant, which may indicate low energy combined with negative feelings. Research suggests physical activity and social connection can help shift from this state.",
	affect.QuadrantPositiveInactive: "Your emotions predominantly fall in the positive-inactive quadrant, suggesting a calm, content state. This state is associated with better recovery and improved long-term decision making.",
}

// QuadrantCount is how many entries fall in one quadrant.
type QuadrantCount struct {
	Quadrant affect.Quadrant `json:"quadrant" yaml:"quadrant"`
	Emoji    string          `json:"emoji" yaml:"emoji"`
	Count    int             `json:"count" yaml:"count"`
	// Emotions are the distinct labels seen in the quadrant, first seen first.
	Emotions []string `json:"emotions" yaml:"emotions"`
}

// EmotionCount is how often a label was logged.
type EmotionCount struct {
	Emotion string `json:"emotion" yaml:"emotion"`
	Emoji   string `json:"emoji" yaml:"emoji"`
	Count   int    `json:"count" yaml:"count"`
}

// Summary holds the aggregate view of a log.
type Summary struct {
	Total          int             `json:"total" yaml:"total"`
	Quadrants      []QuadrantCount `json:"quadrants" yaml:"quadrants"`
	TopEmotions    []EmotionCount  `json:"topEmotions" yaml:"topEmotions"`
	AverageValence float64         `json:"averageValence" yaml:"averageValence"`
	AverageArousal float64         `json:"averageArousal" yaml:"averageArousal"`
	Insight        string          `json:"insight" yaml:"insight"`
	// RecentNotes are the newest entries that carry notes.
	RecentNotes []emotionlog.Entry `json:"recentNotes,omitempty" yaml:"recentNotes,omitempty"`
}

// Dominant returns the quadrant with the most entries.
// Ties resolve to the quadrant listed first.
func (s Summary) Dominant() QuadrantCount {
	if len(s.Quadrants) == 0 {
		return QuadrantCount{}
	}
	best := s.Quadrants[0]
	for _, q := range s.Quadrants[1:] {
		if q.Count > best.Count {
			best = q
		}
	}
	return best
}

// Summarize aggregates entries given newest first.
// Quadrants use the raw sign of valence and arousal, not the domain table.
func Summarize(entries []emotionlog.Entry, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	quadrants := make([]QuadrantCount, len(affect.Quadrants))
	index := make(map[affect.Quadrant]int, len(affect.Quadrants))
	for i, q := range affect.Quadrants {
		quadrants[i] = QuadrantCount{Quadrant: q, Emoji: q.Emoji(), Emotions: []string{}}
		index[q] = i
	}

	var sumValence, sumArousal float64
	counts := make(map[string]*EmotionCount)
	var order []string
	for _, e := range entries {
		q := &quadrants[index[e.Quadrant()]]
		q.Count++
		if !slices.Contains(q.Emotions, e.Emotion) {
			q.Emotions = append(q.Emotions, e.Emotion)
		}

		c, ok := counts[e.Emotion]
		if !ok {
			c = &EmotionCount{Emotion: e.Emotion, Emoji: e.Emoji}
			counts[e.Emotion] = c
			order = append(order, e.Emotion)
		}
		c.Count++

		sumValence += e.Valence
		sumArousal += e.Arousal
	}

	summary := Summary{
		Total:       len(entries),
		Quadrants:   quadrants,
		TopEmotions: topEmotions(counts, order, topN),
		RecentNotes: recentNotes(entries, topN),
	}
	if len(entries) > 0 {
		summary.AverageValence = round2(sumValence / float64(len(entries)))
		summary.AverageArousal = round2(sumArousal / float64(len(entries)))
	}
	summary.Insight = insight(summary)
	return summary
}

func topEmotions(counts map[string]*EmotionCount, order []string, n int) []EmotionCount {
	ranked := make([]EmotionCount, 0, len(order))
	for _, label := range order {
		ranked = append(ranked, *counts[label])
	}
	// stable so equal counts keep first-seen order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func recentNotes(entries []emotionlog.Entry, n int) []emotionlog.Entry {
	var out []emotionlog.Entry
	for _, e := range entries {
		if strings.TrimSpace(e.Notes) == "" {
			continue
		}
		out = append(out, e)
		if len(out) == n {
			break
		}
	}
	return out
}

func insight(s Summary) string {
	if s.Total < minEntriesForInsight {
		return notEnoughEntriesInsight
	}
	return quadrantInsights[s.Dominant().Quadrant]
}

func round2(v float64) float64 {
	return math.Round(v*100)/100 + 0
}
