// Package journal is the state container for one user's emotion data: the
// log with its undo history, named collections and tags. It is loaded from and
// saved to a storage.KeyValueStore as independent JSON blobs.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/storage"
)

// Keys under which the journal is persisted.
const (
	KeyLog         = "emotionLog"
	KeyCollections = "emotionCollections"
	KeyTags        = "emotionTags"
	KeyEntryTags   = "emotionEntryTags"
	KeyUndoHistory = "emotionUndoHistory"
)

// Keys lists every key a journal is saved under.
var Keys = []string{KeyLog, KeyUndoHistory, KeyCollections, KeyTags, KeyEntryTags}

var ErrCollectionNotFound = errors.New("collection not found")

// Collection groups entries under a name.
type Collection struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Journal is not safe for concurrent use.
type Journal struct {
	log         *emotionlog.Store
	collections []Collection
	tags        []string

	undoDepth int
	newID     func() string
}

// Option configures a Journal.
type Option func(*Journal)

// WithUndoDepth bounds the undo history of the log.
func WithUndoDepth(depth int) Option {
	return func(j *Journal) {
		j.undoDepth = depth
	}
}

// WithIDGenerator replaces the UUID generator used for collection IDs.
func WithIDGenerator(newID func() string) Option {
	return func(j *Journal) {
		j.newID = newID
	}
}

// New returns an empty journal.
func New(opts ...Option) *Journal {
	j := &Journal{
		undoDepth: emotionlog.DefaultUndoDepth,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.log = emotionlog.NewStore(nil, emotionlog.WithUndoDepth(j.undoDepth))
	return j
}

// Load reads a journal from kv. Missing keys load as empty.
func Load(ctx context.Context, kv storage.KeyValueStore, opts ...Option) (*Journal, error) {
	j := New(opts...)

	var entries []emotionlog.Entry
	if err := getJSON(ctx, kv, KeyLog, &entries); err != nil {
		return nil, err
	}
	var history [][]emotionlog.Entry
	if err := getJSON(ctx, kv, KeyUndoHistory, &history); err != nil {
		return nil, err
	}
	if err := getJSON(ctx, kv, KeyCollections, &j.collections); err != nil {
		return nil, err
	}
	if err := getJSON(ctx, kv, KeyTags, &j.tags); err != nil {
		return nil, err
	}
	var entryTags map[string][]string
	if err := getJSON(ctx, kv, KeyEntryTags, &entryTags); err != nil {
		return nil, err
	}

	// Older data kept tags only in the timestamp map.
	for i, e := range entries {
		if len(e.Tags) == 0 && len(entryTags[e.Timestamp]) > 0 {
			entries[i].Tags = slices.Clone(entryTags[e.Timestamp])
		}
	}

	j.log = emotionlog.NewStore(entries,
		emotionlog.WithUndoDepth(j.undoDepth),
		emotionlog.WithHistory(history),
	)
	return j, nil
}

func getJSON(ctx context.Context, kv storage.KeyValueStore, key string, v any) error {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save writes every key of the journal to kv.
func (j *Journal) Save(ctx context.Context, kv storage.KeyValueStore) error {
	values := map[string]any{
		KeyLog:         nonNil(j.log.Entries()),
		KeyUndoHistory: nonNil(j.log.History()),
		KeyCollections: nonNil(j.collections),
		KeyTags:        nonNil(j.tags),
		KeyEntryTags:   j.EntryTags(),
	}

	blobs := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		blobs[key] = data
	}
	if err := kv.PutAll(ctx, blobs); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Checkpoint is the state of a Journal at one point in time.
type Checkpoint struct {
	log         emotionlog.Snapshot
	collections []Collection
	tags        []string
}

// Checkpoint captures the journal so a failed change can be rolled back.
func (j *Journal) Checkpoint() Checkpoint {
	return Checkpoint{
		log:         j.log.Snapshot(),
		collections: slices.Clone(j.collections),
		tags:        slices.Clone(j.tags),
	}
}

// Rollback restores the journal to cp.
func (j *Journal) Rollback(cp Checkpoint) {
	j.log.Restore(cp.log)
	j.collections = slices.Clone(cp.collections)
	j.tags = slices.Clone(cp.tags)
}

// Log returns the underlying log store.
func (j *Journal) Log() *emotionlog.Store {
	return j.log
}

// Entries returns the logged entries, newest first.
func (j *Journal) Entries() []emotionlog.Entry {
	return j.log.Entries()
}

// Collections returns the collections in creation order.
func (j *Journal) Collections() []Collection {
	return slices.Clone(j.collections)
}

// Collection looks up a collection by ID.
func (j *Journal) Collection(id string) (Collection, error) {
	for _, c := range j.collections {
		if c.ID == id {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("collection %q: %w", id, ErrCollectionNotFound)
}

// AddCollection creates a collection with a fresh ID.
func (j *Journal) AddCollection(name string) (Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Collection{}, errors.New("collection name is empty")
	}
	c := Collection{ID: j.newID(), Name: name}
	j.collections = append(j.collections, c)
	return c, nil
}

// RemoveCollection deletes a collection and unassigns it from every entry.
func (j *Journal) RemoveCollection(id string) error {
	idx := slices.IndexFunc(j.collections, func(c Collection) bool { return c.ID == id })
	if idx < 0 {
		return fmt.Errorf("collection %q: %w", id, ErrCollectionNotFound)
	}
	j.collections = slices.Delete(slices.Clone(j.collections), idx, idx+1)

	j.log.Update(func(e emotionlog.Entry) (emotionlog.Entry, bool) {
		if e.Collection != id {
			return e, false
		}
		e.Collection = ""
		return e, true
	})
	return nil
}

// AssignCollection puts the entry at index into a collection.
// An empty id removes the entry from its collection.
func (j *Journal) AssignCollection(index int, id string) error {
	if id != "" {
		if _, err := j.Collection(id); err != nil {
			return err
		}
	}
	e, err := j.log.Get(index)
	if err != nil {
		return err
	}
	e = e.Clone()
	e.Collection = id
	return j.log.Replace(index, e)
}

// Tags returns every tag ever used, sorted.
func (j *Journal) Tags() []string {
	return slices.Clone(j.tags)
}

// TagEntry replaces the tags of the entry at index. Tags are trimmed and
// de-duplicated, and new ones join the known tag list.
func (j *Journal) TagEntry(index int, tags []string) error {
	e, err := j.log.Get(index)
	if err != nil {
		return err
	}
	tags = NormalizeTags(tags)

	e = e.Clone()
	e.Tags = tags
	if err := j.log.Replace(index, e); err != nil {
		return err
	}
	j.rememberTags(tags)
	return nil
}

// Append logs a new entry and records its tags.
func (j *Journal) Append(e emotionlog.Entry) {
	e.Tags = NormalizeTags(e.Tags)
	j.log.Append(e)
	j.rememberTags(e.Tags)
}

// Replace overwrites the entry at index and records its tags.
func (j *Journal) Replace(index int, e emotionlog.Entry) error {
	e.Tags = NormalizeTags(e.Tags)
	if err := j.log.Replace(index, e); err != nil {
		return err
	}
	j.rememberTags(e.Tags)
	return nil
}

// Import merges entries into the log and records the tags of the entries
// that were added. Skipped duplicates contribute no tags.
func (j *Journal) Import(entries []emotionlog.Entry) emotionlog.ImportResult {
	seen := make(map[string]struct{}, j.log.Len()+len(entries))
	for _, e := range j.log.Entries() {
		seen[e.Timestamp] = struct{}{}
	}

	normalized := make([]emotionlog.Entry, len(entries))
	var addedTags [][]string
	for i, e := range entries {
		e.Tags = NormalizeTags(e.Tags)
		normalized[i] = e
		if _, ok := seen[e.Timestamp]; ok {
			continue
		}
		seen[e.Timestamp] = struct{}{}
		addedTags = append(addedTags, e.Tags)
	}

	result := j.log.Import(normalized)
	for _, tags := range addedTags {
		j.rememberTags(tags)
	}
	return result
}

func (j *Journal) rememberTags(tags []string) {
	changed := false
	for _, t := range tags {
		if !slices.Contains(j.tags, t) {
			j.tags = append(j.tags, t)
			changed = true
		}
	}
	if changed {
		sort.Strings(j.tags)
	}
}

// EntryTags maps entry timestamps to their tags.
func (j *Journal) EntryTags() map[string][]string {
	out := make(map[string][]string)
	for _, e := range j.log.Entries() {
		if len(e.Tags) > 0 {
			out[e.Timestamp] = slices.Clone(e.Tags)
		}
	}
	return out
}

// NormalizeTags trims tags, drops empty ones and removes duplicates,
// keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
