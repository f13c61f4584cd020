// Package datasync copies a journal between storage backends, e.g. from the
// file store into MySQL.
package datasync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/storage"
)

// SyncResult tracks counts of copied keys.
type SyncResult struct {
	New       int
	Skipped   int
	Updated   int
	Unchanged int
	Missing   int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun bool
	// UpdateExisting overwrites keys that already hold a different value.
	UpdateExisting bool
}

// Syncer copies journal keys from one store to another.
type Syncer struct {
	src    storage.KeyValueStore
	dst    storage.KeyValueStore
	writer io.Writer
}

// NewSyncer creates a Syncer that reports each key to writer.
func NewSyncer(src, dst storage.KeyValueStore, writer io.Writer) *Syncer {
	return &Syncer{
		src:    src,
		dst:    dst,
		writer: writer,
	}
}

// Sync copies every journal key. All changed keys are written in one PutAll
// so a failure leaves the destination as it was.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	var result SyncResult
	values := make(map[string][]byte)

	for _, key := range journal.Keys {
		value, err := s.src.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(s.writer, "  [MISSING]  %s\n", key)
			result.Missing++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("src.Get(%s) > %w", key, err)
		}

		existing, err := s.dst.Get(ctx, key)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(s.writer, "  [NEW]  %s (%d bytes)\n", key, len(value))
			result.New++
			values[key] = value
		case err != nil:
			return nil, fmt.Errorf("dst.Get(%s) > %w", key, err)
		case bytes.Equal(existing, value):
			result.Unchanged++
		case !opts.UpdateExisting:
			fmt.Fprintf(s.writer, "  [SKIP]  %s\n", key)
			result.Skipped++
		default:
			fmt.Fprintf(s.writer, "  [UPDATE]  %s (%d bytes)\n", key, len(value))
			result.Updated++
			values[key] = value
		}
	}

	if opts.DryRun || len(values) == 0 {
		return &result, nil
	}
	if err := s.dst.PutAll(ctx, values); err != nil {
		return nil, fmt.Errorf("dst.PutAll() > %w", err)
	}
	return &result, nil
}
