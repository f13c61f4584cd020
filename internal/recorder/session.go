// Package recorder implements the state machine that turns pointer input on
// the circumplex plane into log entries.
package recorder

import (
	"slices"
	"time"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
)

// Mode is the state of a recording session.
type Mode string

const (
	ModeIdle          Mode = "idle"
	ModeStartSelected Mode = "start-selected"
	ModeRecording     Mode = "recording"
	ModeCompleted     Mode = "completed"
)

// minStepDistance is how far the pointer must travel before a move with an
// unchanged label is appended to the path.
const minStepDistance = 0.1

// Commit is the outcome of finishing a session.
type Commit struct {
	Entry emotionlog.Entry
	// Index is the position to replace when Replace is true.
	Index   int
	Replace bool
}

// Session records one emotion or one start-to-end transition.
// It is not safe for concurrent use.
type Session struct {
	mode    Mode
	start   affect.Position
	current affect.Position
	path    []affect.Position
	notes   string
	moved   bool

	editing   bool
	editIndex int
	original  emotionlog.Entry

	level OptimizationLevel
	now   func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithOptimizationLevel sets how recorded paths are thinned on stop.
func WithOptimizationLevel(level OptimizationLevel) Option {
	return func(s *Session) {
		s.level = level
	}
}

// NewSession returns an idle session centered on the plane.
func NewSession(opts ...Option) *Session {
	s := &Session{
		mode:    ModeIdle,
		start:   affect.Center,
		current: affect.Center,
		level:   OptimizationMedium,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Start() affect.Position {
	return s.start
}

func (s *Session) Current() affect.Position {
	return s.current
}

func (s *Session) Path() []affect.Position {
	return slices.Clone(s.path)
}

func (s *Session) Notes() string {
	return s.notes
}

// Editing returns the index of the entry being edited.
func (s *Session) Editing() (int, bool) {
	return s.editIndex, s.editing
}

// SetNotes attaches free text to the entry being built.
func (s *Session) SetNotes(notes string) {
	s.notes = notes
}

// Click handles a click on the plane.
func (s *Session) Click(p affect.Position) {
	p = p.Clamp()
	switch s.mode {
	case ModeIdle, ModeCompleted:
		s.start = p
		s.current = p
		s.path = []affect.Position{p}
		s.moved = false
		s.mode = ModeStartSelected
	case ModeRecording:
		s.Move(p)
	}
}

// Drag handles a pointer drag on the plane.
func (s *Session) Drag(p affect.Position) {
	p = p.Clamp()
	switch s.mode {
	case ModeIdle, ModeStartSelected:
		s.start = p
		s.current = p
		s.path = []affect.Position{p}
		s.mode = ModeStartSelected
	case ModeRecording:
		s.Move(p)
	case ModeCompleted:
		s.current = p
	}
}

// StartRecording begins capturing a path from the selected start.
// It reports false outside start-selected.
func (s *Session) StartRecording() bool {
	if s.mode != ModeStartSelected {
		return false
	}
	s.path = []affect.Position{s.start}
	s.moved = false
	s.mode = ModeRecording
	return true
}

// Move tracks the pointer while recording. The point is appended when it is
// the first move, when its label differs from the last path point, or when it
// is far enough from it.
func (s *Session) Move(p affect.Position) {
	if s.mode != ModeRecording {
		return
	}
	p = p.Clamp()
	s.current = p

	if len(s.path) == 0 {
		s.path = []affect.Position{p}
		s.moved = true
		return
	}
	prev := s.path[len(s.path)-1]
	switch {
	case !s.moved,
		affect.ClassifyPosition(p).Label != affect.ClassifyPosition(prev).Label,
		affect.Distance(prev, p) > minStepDistance:
		s.path = append(s.path, p)
	}
	s.moved = true
}

// StopRecording finishes the path. A path with a single point is completed
// with the current position so that every recorded path has two points.
func (s *Session) StopRecording() bool {
	if s.mode != ModeRecording {
		return false
	}
	if len(s.path) == 1 {
		s.path = append(s.path, s.current)
	} else {
		s.path = OptimizePath(s.path, s.level)
	}
	s.mode = ModeCompleted
	return true
}

// BeginEdit loads an existing entry so that the next commit replaces it.
func (s *Session) BeginEdit(index int, entry emotionlog.Entry) {
	s.editing = true
	s.editIndex = index
	s.original = entry.Clone()

	end := affect.FromValenceArousal(affect.ValenceArousal{Valence: entry.Valence, Arousal: entry.Arousal})
	s.current = end
	s.start = end
	if entry.HasStart() {
		s.start = affect.FromValenceArousal(affect.ValenceArousal{Valence: *entry.StartValence, Arousal: *entry.StartArousal})
	}
	s.path = slices.Clone(entry.Path)
	s.notes = entry.Notes
	s.moved = false
	s.mode = ModeCompleted
}

// Commit builds the entry and resets the session. It reports false when
// there is nothing to commit.
func (s *Session) Commit() (Commit, bool) {
	switch s.mode {
	case ModeCompleted, ModeStartSelected:
	default:
		return Commit{}, false
	}

	entry := s.buildEntry()
	c := Commit{Entry: entry}
	if s.editing {
		c.Index = s.editIndex
		c.Replace = true
	}
	s.Cancel()
	return c, true
}

func (s *Session) buildEntry() emotionlog.Entry {
	end := affect.ToValenceArousal(s.current)
	endEmotion := affect.Classify(end.Valence, end.Arousal)

	entry := emotionlog.Entry{
		Emotion: endEmotion.Label,
		Emoji:   endEmotion.Emoji,
		Valence: end.Valence,
		Arousal: end.Arousal,
		Notes:   s.notes,
	}

	// An edit of an entry logged without a start only gains one when the
	// start is moved away from the end.
	hasStart := !s.editing || s.original.HasStart() || s.start != s.current
	if hasStart {
		start := affect.ToValenceArousal(s.start)
		startEmotion := affect.Classify(start.Valence, start.Arousal)
		entry.StartEmotion = startEmotion.Label
		entry.StartEmoji = startEmotion.Emoji
		entry.StartValence = emotionlog.Float(start.Valence)
		entry.StartArousal = emotionlog.Float(start.Arousal)
	}
	if len(s.path) > 1 {
		entry.Path = slices.Clone(s.path)
	}

	if !s.editing {
		entry.Timestamp = emotionlog.FormatTimestamp(s.now())
		return entry
	}

	// Edits keep the identity and grouping of the original entry.
	entry.Timestamp = s.original.Timestamp
	entry.Collection = s.original.Collection
	entry.Tags = slices.Clone(s.original.Tags)
	if len(entry.Path) == 0 && s.original.HasPath() {
		entry.Path = slices.Clone(s.original.Path)
	}
	return entry
}

// Cancel drops everything and returns to idle.
func (s *Session) Cancel() {
	s.mode = ModeIdle
	s.start = affect.Center
	s.current = affect.Center
	s.path = nil
	s.notes = ""
	s.moved = false
	s.editing = false
	s.editIndex = 0
	s.original = emotionlog.Entry{}
}
