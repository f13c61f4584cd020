package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/exchange"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/recorder"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/storage"
)

// Tracker implements Service over a journal persisted in a key-value store.
// The journal is saved after every change.
type Tracker struct {
	mu        sync.Mutex
	journal   *journal.Journal
	kv        storage.KeyValueStore
	validator *config.Validator

	level       recorder.OptimizationLevel
	now         func() time.Time
	journalOpts []journal.Option
}

var _ Service = (*Tracker)(nil)

// Option configures a Tracker.
type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithOptimizationLevel(level recorder.OptimizationLevel) Option {
	return func(t *Tracker) {
		t.level = level
	}
}

// WithJournalOptions passes options through to journal.Load.
func WithJournalOptions(opts ...journal.Option) Option {
	return func(t *Tracker) {
		t.journalOpts = append(t.journalOpts, opts...)
	}
}

// New loads the journal from kv.
func New(ctx context.Context, kv storage.KeyValueStore, opts ...Option) (*Tracker, error) {
	validate, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	t := &Tracker{
		kv:        kv,
		validator: validate,
		level:     recorder.OptimizationMedium,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	j, err := journal.Load(ctx, kv, t.journalOpts...)
	if err != nil {
		return nil, fmt.Errorf("journal.Load() > %w", err)
	}
	t.journal = j
	return t, nil
}

func (t *Tracker) save(ctx context.Context, op string) error {
	if err := t.journal.Save(ctx, t.kv); err != nil {
		slog.Default().Error("failed to save journal",
			slog.String("operation", op),
			slog.Any("error", err),
		)
		return err
	}
	slog.Default().Debug("journal saved",
		slog.String("operation", op),
		slog.Int("entries", t.journal.Log().Len()),
	)
	return nil
}

// apply runs change against the journal and saves the result. When change
// reports false nothing is saved. The journal is rolled back when either the
// change or the save fails.
func (t *Tracker) apply(ctx context.Context, op string, change func() (bool, error)) error {
	cp := t.journal.Checkpoint()
	changed, err := change()
	if err != nil {
		t.journal.Rollback(cp)
		return err
	}
	if !changed {
		return nil
	}
	if err := t.save(ctx, op); err != nil {
		t.journal.Rollback(cp)
		return err
	}
	return nil
}

// applied adapts a change that always modifies the journal.
func applied(fn func() error) func() (bool, error) {
	return func() (bool, error) {
		if err := fn(); err != nil {
			return false, err
		}
		return true, nil
	}
}

func (t *Tracker) validate(req any) error {
	if err := t.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func (t *Tracker) filtered(filter Filter) []IndexedEntry {
	entries := t.journal.Entries()
	var cutoff time.Time
	if filter.Days > 0 {
		cutoff = t.now().AddDate(0, 0, -filter.Days)
	}

	out := make([]IndexedEntry, 0, len(entries))
	for i, e := range entries {
		if filter.Days > 0 {
			ts, err := e.Time()
			if err != nil || ts.Before(cutoff) {
				continue
			}
		}
		if filter.Collection != "" && e.Collection != filter.Collection {
			continue
		}
		if filter.Tag != "" && len(emotionlog.WithTag([]emotionlog.Entry{e}, filter.Tag)) == 0 {
			continue
		}
		out = append(out, IndexedEntry{Index: i, Entry: e})
	}
	return out
}

func entriesOf(indexed []IndexedEntry) []emotionlog.Entry {
	out := make([]emotionlog.Entry, len(indexed))
	for i, ie := range indexed {
		out[i] = ie.Entry
	}
	return out
}

func (t *Tracker) Entries(_ context.Context, filter Filter) ([]IndexedEntry, error) {
	if err := t.validate(filter); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filtered(filter), nil
}

func (t *Tracker) newSession() *recorder.Session {
	return recorder.NewSession(
		recorder.WithClock(t.now),
		recorder.WithOptimizationLevel(t.level),
	)
}

func startPosition(start *affect.Position, emotion string) (affect.Position, error) {
	if start != nil {
		return start.Clamp(), nil
	}
	std, ok := affect.LookupStandard(emotion)
	if !ok {
		return affect.Position{}, fmt.Errorf("%q: %w", emotion, ErrUnknownEmotion)
	}
	return std.Position(), nil
}

// record drives a session the way pointer input would: a click at the start,
// then a recording through path and end when either is given.
func record(s *recorder.Session, start affect.Position, end *affect.Position, path []affect.Position) {
	s.Click(start)
	if end == nil && len(path) == 0 {
		return
	}
	s.StartRecording()
	for _, p := range path {
		s.Move(p)
	}
	if end != nil {
		s.Move(*end)
	}
	s.StopRecording()
}

func (t *Tracker) Log(ctx context.Context, req LogRequest) (emotionlog.Entry, error) {
	if err := t.validate(req); err != nil {
		return emotionlog.Entry{}, err
	}
	start, err := startPosition(req.Start, req.Emotion)
	if err != nil {
		return emotionlog.Entry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if req.Collection != "" {
		if _, err := t.journal.Collection(req.Collection); err != nil {
			return emotionlog.Entry{}, err
		}
	}

	s := t.newSession()
	record(s, start, req.End, req.Path)
	s.SetNotes(req.Notes)
	c, ok := s.Commit()
	if !ok {
		return emotionlog.Entry{}, fmt.Errorf("%w: session did not complete", ErrInvalidRequest)
	}

	entry := c.Entry
	entry.Collection = req.Collection
	entry.Tags = journal.NormalizeTags(req.Tags)
	err = t.apply(ctx, "log", applied(func() error {
		t.journal.Append(entry)
		return nil
	}))
	if err != nil {
		return emotionlog.Entry{}, err
	}

	slog.Default().Info("emotion logged",
		slog.String("emotion", entry.Emotion),
		slog.String("timestamp", entry.Timestamp),
	)
	return entry, nil
}

func (t *Tracker) Edit(ctx context.Context, index int, req EditRequest) (emotionlog.Entry, error) {
	if err := t.validate(req); err != nil {
		return emotionlog.Entry{}, err
	}
	if !req.moves() && req.Notes == nil {
		return emotionlog.Entry{}, ErrNothingToChange
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.journal.Log().Get(index)
	if err != nil {
		return emotionlog.Entry{}, err
	}

	s := t.newSession()
	s.BeginEdit(index, current)
	if req.moves() {
		start := s.Start()
		if req.Start != nil || req.Emotion != "" {
			start, err = startPosition(req.Start, req.Emotion)
			if err != nil {
				return emotionlog.Entry{}, err
			}
		}
		record(s, start, req.End, req.Path)
	}
	if req.Notes != nil {
		s.SetNotes(*req.Notes)
	}

	c, ok := s.Commit()
	if !ok || !c.Replace {
		return emotionlog.Entry{}, fmt.Errorf("%w: edit did not complete", ErrInvalidRequest)
	}
	err = t.apply(ctx, "edit", applied(func() error {
		return t.journal.Replace(c.Index, c.Entry)
	}))
	if err != nil {
		return emotionlog.Entry{}, err
	}
	return c.Entry, nil
}

func (t *Tracker) Delete(ctx context.Context, index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.apply(ctx, "delete", applied(func() error {
		return t.journal.Log().Remove(index)
	}))
}

func (t *Tracker) Undo(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var undone bool
	err := t.apply(ctx, "undo", func() (bool, error) {
		undone = t.journal.Log().Undo()
		return undone, nil
	})
	if err != nil {
		return false, err
	}
	return undone, nil
}

func (t *Tracker) Summary(_ context.Context, filter Filter, topN int) (statistics.Summary, error) {
	if err := t.validate(filter); err != nil {
		return statistics.Summary{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return statistics.Summarize(entriesOf(t.filtered(filter)), topN), nil
}

func (t *Tracker) Trend(_ context.Context, filter Filter) (statistics.Trend, error) {
	if err := t.validate(filter); err != nil {
		return statistics.Trend{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return statistics.AnalyzeTrend(entriesOf(t.filtered(filter)))
}

// Import validates every entry before merging any of them.
func (t *Tracker) Import(ctx context.Context, entries []emotionlog.Entry) (emotionlog.ImportResult, error) {
	for i, e := range entries {
		if err := t.validator.Struct(e); err != nil {
			return emotionlog.ImportResult{}, fmt.Errorf("%w: entry %d: %v", exchange.ErrInvalidImport, i, err)
		}
		if _, err := e.Time(); err != nil {
			return emotionlog.ImportResult{}, fmt.Errorf("%w: entry %d: timestamp %q is not ISO-8601", exchange.ErrInvalidImport, i, e.Timestamp)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var result emotionlog.ImportResult
	err := t.apply(ctx, "import", func() (bool, error) {
		result = t.journal.Import(entries)
		return result.Added > 0, nil
	})
	if err != nil {
		return emotionlog.ImportResult{}, err
	}
	slog.Default().Info("entries imported",
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (t *Tracker) Collections(_ context.Context) ([]journal.Collection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.journal.Collections(), nil
}

func (t *Tracker) AddCollection(ctx context.Context, name string) (journal.Collection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var c journal.Collection
	err := t.apply(ctx, "add collection", applied(func() error {
		var err error
		c, err = t.journal.AddCollection(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return nil
	}))
	if err != nil {
		return journal.Collection{}, err
	}
	return c, nil
}

func (t *Tracker) RemoveCollection(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.apply(ctx, "remove collection", applied(func() error {
		return t.journal.RemoveCollection(id)
	}))
}

func (t *Tracker) AssignCollection(ctx context.Context, index int, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.apply(ctx, "assign collection", applied(func() error {
		return t.journal.AssignCollection(index, id)
	}))
}

func (t *Tracker) Tags(_ context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.journal.Tags(), nil
}

func (t *Tracker) TagEntry(ctx context.Context, index int, tags []string) error {
	if err := t.validator.Var(tags, "max=50,dive,max=64"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.apply(ctx, "tag entry", applied(func() error {
		return t.journal.TagEntry(index, tags)
	}))
}
