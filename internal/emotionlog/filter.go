package emotionlog

import (
	"slices"
	"time"
)

// Since keeps entries logged within the last days before now.
// A non-positive days keeps everything.
func Since(entries []Entry, now time.Time, days int) []Entry {
	if days <= 0 {
		return slices.Clone(entries)
	}
	cutoff := now.AddDate(0, 0, -days)
	var out []Entry
	for _, e := range entries {
		t, err := e.Time()
		if err != nil {
			continue
		}
		if !t.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// InCollection keeps entries assigned to the collection.
func InCollection(entries []Entry, collectionID string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Collection == collectionID {
			out = append(out, e)
		}
	}
	return out
}

// WithTag keeps entries carrying the tag.
func WithTag(entries []Entry, tag string) []Entry {
	var out []Entry
	for _, e := range entries {
		if slices.Contains(e.Tags, tag) {
			out = append(out, e)
		}
	}
	return out
}

// Chronological returns a copy ordered oldest first.
func Chronological(entries []Entry) []Entry {
	out := slices.Clone(entries)
	sortNewestFirst(out)
	slices.Reverse(out)
	return out
}
