// Package emotionlog holds logged emotion entries and their undo history.
package emotionlog

import (
	"slices"
	"time"

	"github.com/at-ishikawa/circumplex/internal/affect"
)

// TimestampLayout matches the ISO-8601 form written by browsers' Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is a single logged emotion. Start fields are set when the entry was
// recorded as a change from one emotion to another.
type Entry struct {
	Emotion      string            `json:"emotion" yaml:"emotion" validate:"required"`
	Emoji        string            `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Valence      float64           `json:"valence" yaml:"valence" validate:"gte=-1,lte=1"`
	Arousal      float64           `json:"arousal" yaml:"arousal" validate:"gte=-1,lte=1"`
	StartEmotion string            `json:"startEmotion,omitempty" yaml:"startEmotion,omitempty"`
	StartEmoji   string            `json:"startEmoji,omitempty" yaml:"startEmoji,omitempty"`
	StartValence *float64          `json:"startValence,omitempty" yaml:"startValence,omitempty" validate:"omitempty,gte=-1,lte=1"`
	StartArousal *float64          `json:"startArousal,omitempty" yaml:"startArousal,omitempty" validate:"omitempty,gte=-1,lte=1"`
	Timestamp    string            `json:"timestamp" yaml:"timestamp" validate:"required"`
	Path         []affect.Position `json:"path,omitempty" yaml:"path,omitempty" validate:"omitempty,min=2"`
	Notes        string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Collection   string            `json:"collection,omitempty" yaml:"collection,omitempty"`
	Tags         []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// FormatTimestamp renders t the way entries store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Time parses the entry timestamp. Entries imported from other tools may use
// plain RFC 3339 without milliseconds, so both are accepted.
func (e Entry) Time() (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, e.Timestamp); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, e.Timestamp)
}

// Quadrant classifies the entry by the raw sign of its end point.
func (e Entry) Quadrant() affect.Quadrant {
	return affect.QuadrantOf(e.Valence, e.Arousal)
}

// HasStart reports whether the entry records a starting emotion.
func (e Entry) HasStart() bool {
	return e.StartEmotion != "" && e.StartValence != nil && e.StartArousal != nil
}

// IsTransition reports whether the entry starts somewhere other than where it ends.
func (e Entry) IsTransition() bool {
	return e.HasStart() && (*e.StartValence != e.Valence || *e.StartArousal != e.Arousal)
}

// HasPath reports whether the entry carries a recorded path.
func (e Entry) HasPath() bool {
	return len(e.Path) > 1
}

// Clone returns a copy that shares no slices or pointers with e.
func (e Entry) Clone() Entry {
	out := e
	out.Path = slices.Clone(e.Path)
	out.Tags = slices.Clone(e.Tags)
	if e.StartValence != nil {
		v := *e.StartValence
		out.StartValence = &v
	}
	if e.StartArousal != nil {
		a := *e.StartArousal
		out.StartArousal = &a
	}
	return out
}

// Float returns a pointer to v, for the optional start coordinates.
func Float(v float64) *float64 {
	return &v
}
