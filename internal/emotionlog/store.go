package emotionlog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// DefaultUndoDepth bounds the undo history when no depth is configured.
const DefaultUndoDepth = 50

var ErrIndexOutOfRange = errors.New("entry index out of range")

// Store is the newest-first list of entries plus an undo history.
//
// Every mutation builds a new slice and never writes to a slice that has been
// handed out, so pushing the previous slice onto the history is a snapshot
// without copying entries. Entries themselves must be treated as immutable.
type Store struct {
	entries   []Entry
	history   [][]Entry
	undoDepth int
}

// Option configures a Store.
type Option func(*Store)

// WithUndoDepth bounds the undo history. Values below 1 disable undo.
func WithUndoDepth(depth int) Option {
	return func(s *Store) {
		s.undoDepth = depth
	}
}

// WithHistory seeds the undo history, oldest snapshot first.
func WithHistory(history [][]Entry) Option {
	return func(s *Store) {
		s.history = slices.Clone(history)
	}
}

// NewStore creates a Store holding entries, newest first.
func NewStore(entries []Entry, opts ...Option) *Store {
	s := &Store{
		entries:   slices.Clone(entries),
		undoDepth: DefaultUndoDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.trimHistory()
	return s
}

// Entries returns the current entries, newest first.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry at index.
func (s *Store) Get(index int) (Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("get entry %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	return s.entries[index], nil
}

// History returns the undo snapshots, oldest first.
func (s *Store) History() [][]Entry {
	return slices.Clone(s.history)
}

// UndoDepth returns how many undo steps are available.
func (s *Store) UndoDepth() int {
	return len(s.history)
}

// Append puts entry at the front of the list.
func (s *Store) Append(entry Entry) {
	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	s.commit(next)
}

// Replace overwrites the entry at index.
func (s *Store) Replace(index int, entry Entry) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("replace entry %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	next := slices.Clone(s.entries)
	next[index] = entry
	s.commit(next)
	return nil
}

// Remove deletes the entry at index.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("remove entry %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:index]...)
	next = append(next, s.entries[index+1:]...)
	s.commit(next)
	return nil
}

// Update rewrites every entry for which fn reports a change, as a single
// mutation. It returns how many entries changed.
func (s *Store) Update(fn func(Entry) (Entry, bool)) int {
	next := slices.Clone(s.entries)
	changed := 0
	for i, e := range next {
		updated, ok := fn(e.Clone())
		if !ok {
			continue
		}
		next[i] = updated
		changed++
	}
	if changed > 0 {
		s.commit(next)
	}
	return changed
}

// Undo restores the list as it was before the last mutation.
// It reports false when there is nothing to undo.
func (s *Store) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.entries = s.history[last]
	s.history = s.history[:last:last]
	return true
}

// Snapshot is the state of a Store at one point in time.
type Snapshot struct {
	entries []Entry
	history [][]Entry
}

// Snapshot captures the entries and the undo history.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{entries: s.entries, history: slices.Clone(s.history)}
}

// Restore puts the store back to a snapshot taken earlier.
func (s *Store) Restore(snap Snapshot) {
	s.entries = snap.entries
	s.history = slices.Clone(snap.history)
}

// ImportResult counts what an import did.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Import merges entries whose timestamp is not already present. Duplicates,
// including repeats inside the batch, are dropped. The merged list is ordered
// newest first.
func (s *Store) Import(entries []Entry) ImportResult {
	seen := make(map[string]struct{}, len(s.entries)+len(entries))
	for _, e := range s.entries {
		seen[e.Timestamp] = struct{}{}
	}

	var result ImportResult
	var added []Entry
	for _, e := range entries {
		if _, ok := seen[e.Timestamp]; ok {
			result.Skipped++
			continue
		}
		seen[e.Timestamp] = struct{}{}
		added = append(added, e)
		result.Added++
	}
	if len(added) == 0 {
		return result
	}

	next := make([]Entry, 0, len(s.entries)+len(added))
	next = append(next, s.entries...)
	next = append(next, added...)
	sortNewestFirst(next)
	s.commit(next)
	return result
}

func (s *Store) commit(next []Entry) {
	if s.undoDepth > 0 {
		s.history = append(s.history, s.entries)
		s.trimHistory()
	}
	s.entries = next
}

func (s *Store) trimHistory() {
	if s.undoDepth <= 0 {
		s.history = nil
		return
	}
	if over := len(s.history) - s.undoDepth; over > 0 {
		s.history = slices.Clone(s.history[over:])
	}
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, errI := entries[i].Time()
		tj, errJ := entries[j].Time()
		if errI != nil || errJ != nil {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return ti.After(tj)
	})
}
