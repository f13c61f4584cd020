// Package tracker is the service shared by the CLI and the HTTP server.
package tracker

import (
	"context"
	"errors"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/statistics"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnknownEmotion  = errors.New("unknown emotion")
	ErrNothingToChange = errors.New("nothing to change")
)

//go:generate mockgen -source=service.go -destination=../mocks/tracker/mock_service.go -package=mock_tracker

// Service reads and changes one emotion journal.
// Entry indexes refer to the full log, newest first.
type Service interface {
	Entries(ctx context.Context, filter Filter) ([]IndexedEntry, error)
	Log(ctx context.Context, req LogRequest) (emotionlog.Entry, error)
	Edit(ctx context.Context, index int, req EditRequest) (emotionlog.Entry, error)
	Delete(ctx context.Context, index int) error
	// Undo reports false when there was nothing to undo.
	Undo(ctx context.Context) (bool, error)
	Summary(ctx context.Context, filter Filter, topN int) (statistics.Summary, error)
	Trend(ctx context.Context, filter Filter) (statistics.Trend, error)
	Import(ctx context.Context, entries []emotionlog.Entry) (emotionlog.ImportResult, error)
	Collections(ctx context.Context) ([]journal.Collection, error)
	AddCollection(ctx context.Context, name string) (journal.Collection, error)
	RemoveCollection(ctx context.Context, id string) error
	AssignCollection(ctx context.Context, index int, id string) error
	Tags(ctx context.Context) ([]string, error)
	TagEntry(ctx context.Context, index int, tags []string) error
}

// Filter narrows the entries a read works on. Zero values match everything.
type Filter struct {
	Days       int    `json:"days,omitempty" form:"days" validate:"gte=0"`
	Collection string `json:"collection,omitempty" form:"collection"`
	Tag        string `json:"tag,omitempty" form:"tag"`
}

// IndexedEntry is an entry with its position in the full log.
type IndexedEntry struct {
	Index int              `json:"index" yaml:"index"`
	Entry emotionlog.Entry `json:"entry" yaml:"entry"`
}

// LogRequest describes a new entry. Either Start or a standard Emotion name
// gives the first point. End and Path turn the entry into a transition.
type LogRequest struct {
	Start      *affect.Position  `json:"start,omitempty" validate:"required_without=Emotion"`
	End        *affect.Position  `json:"end,omitempty"`
	Path       []affect.Position `json:"path,omitempty" validate:"max=10000"`
	Emotion    string            `json:"emotion,omitempty"`
	Notes      string            `json:"notes,omitempty" validate:"max=4000"`
	Collection string            `json:"collection,omitempty"`
	Tags       []string          `json:"tags,omitempty" validate:"max=50,dive,max=64"`
}

// EditRequest changes an existing entry. Nil fields are left as they are.
type EditRequest struct {
	Start   *affect.Position  `json:"start,omitempty"`
	End     *affect.Position  `json:"end,omitempty"`
	Path    []affect.Position `json:"path,omitempty" validate:"max=10000"`
	Emotion string            `json:"emotion,omitempty"`
	Notes   *string           `json:"notes,omitempty" validate:"omitempty,max=4000"`
}

func (r EditRequest) moves() bool {
	return r.Start != nil || r.Emotion != "" || r.End != nil || len(r.Path) > 0
}
