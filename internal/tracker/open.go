package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/database"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/recorder"
	"github.com/at-ishikawa/circumplex/internal/storage"
)

// OpenStore returns the key-value store selected by cfg.Storage. The returned
// function releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.KeyValueStore, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		store, err := storage.NewMySQLStore(db, cfg.Storage.Table)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("storage.NewMySQLStore() > %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("store.EnsureSchema() > %w", err)
		}
		slog.Default().Debug("using mysql storage",
			slog.String("host", cfg.Database.Host),
			slog.String("table", cfg.Storage.Table),
		)
		return store, db.Close, nil
	case config.StorageDriverFile, "":
		slog.Default().Debug("using file storage", slog.String("directory", cfg.Storage.Directory))
		return storage.NewFileStore(cfg.Storage.Directory), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// Open builds a Tracker from configuration. Options given here are applied
// after the configured ones.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Tracker, func() error, error) {
	level, err := recorder.ParseOptimizationLevel(cfg.Recorder.OptimizationLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("recorder.ParseOptimizationLevel() > %w", err)
	}
	kv, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]Option{
		WithOptimizationLevel(level),
		WithJournalOptions(journal.WithUndoDepth(cfg.Journal.UndoDepth)),
	}, opts...)
	t, err := New(ctx, kv, opts...)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return t, closeStore, nil
}
