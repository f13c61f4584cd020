package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	mock_tracker "github.com/at-ishikawa/circumplex/internal/mocks/tracker"
	"github.com/at-ishikawa/circumplex/internal/storage"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    affect.Position
		wantErr bool
	}{
		{name: "plain", input: "0.25,0.75", want: affect.Position{X: 0.25, Y: 0.75}},
		{name: "spaces", input: " 1 , 0 ", want: affect.Position{X: 1, Y: 0}},
		{name: "missing comma", input: "0.5", wantErr: true},
		{name: "not a number", input: "a,0.5", wantErr: true},
		{name: "bad y", input: "0.5,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newLocalTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tr, err := tracker.New(context.Background(), storage.NewMemoryStore(), tracker.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	require.NoError(t, err)
	return tr
}

func TestRecorderCLI_Run(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, entries []tracker.IndexedEntry, output string)
	}{
		{
			name:  "single point with notes",
			input: "click 0.9,0.1\nnotes great day\ncommit\nquit\n",
			validate: func(t *testing.T, entries []tracker.IndexedEntry, output string) {
				require.Len(t, entries, 1)
				e := entries[0].Entry
				assert.Equal(t, "Excited", e.Emotion)
				assert.Equal(t, "great day", e.Notes)
				assert.False(t, e.IsTransition())
				assert.Contains(t, output, "Saved:")
			},
		},
		{
			name:  "transition along a path",
			input: "click 0.1,0.9\nstart\nmove 0.5,0.5\nmove 0.9,0.1\nstop\ncommit\n",
			validate: func(t *testing.T, entries []tracker.IndexedEntry, output string) {
				require.Len(t, entries, 1)
				e := entries[0].Entry
				assert.Equal(t, "Excited", e.Emotion)
				assert.Equal(t, "Sad", e.StartEmotion)
				assert.True(t, e.HasPath())
				assert.Contains(t, output, "Recording.")
			},
		},
		{
			name:  "cancel drops the entry",
			input: "click 0.9,0.1\ncancel\ncommit\n",
			validate: func(t *testing.T, entries []tracker.IndexedEntry, output string) {
				assert.Empty(t, entries)
				assert.Contains(t, output, "Cancelled.")
				assert.Contains(t, output, "Nothing to commit.")
			},
		},
		{
			name:  "input mistakes are reported",
			input: "click nowhere\nmove 0.1,0.1\nstart\nstop\nedit 3\nedit x\ndance\n",
			validate: func(t *testing.T, entries []tracker.IndexedEntry, output string) {
				assert.Empty(t, entries)
				assert.Contains(t, output, "invalid position")
				assert.Contains(t, output, "Not recording. Use start first.")
				assert.Contains(t, output, "Select a start point first.")
				assert.Contains(t, output, "Not recording.")
				assert.Contains(t, output, "No entry at index 3.")
				assert.Contains(t, output, "Usage: edit <index>")
				assert.Contains(t, output, `Unknown command "dance"`)
			},
		},
		{
			name:  "status and help",
			input: "help\nclick 0.1,0.9\nnotes tired\nstatus\n",
			validate: func(t *testing.T, entries []tracker.IndexedEntry, output string) {
				assert.Empty(t, entries)
				assert.Contains(t, output, "Commands:")
				assert.Contains(t, output, "Mode: start-selected")
				assert.Contains(t, output, "Notes: tired")
				assert.Contains(t, output, "Sad")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tr := newLocalTracker(t)
			var out bytes.Buffer

			cli := NewRecorderCLI(tr, strings.NewReader(tt.input), &out)
			require.NoError(t, cli.Run(ctx))

			entries, err := tr.Entries(ctx, tracker.Filter{})
			require.NoError(t, err)
			tt.validate(t, entries, out.String())
		})
	}
}

func TestRecorderCLI_Edit(t *testing.T) {
	color.NoColor = true
	original := emotionlog.Entry{
		Emotion:   "Calm",
		Valence:   0.4,
		Arousal:   -0.6,
		Timestamp: "2025-03-01T12:00:00.000Z",
		Notes:     "before",
	}

	tests := []struct {
		name      string
		input     string
		setupMock func(m *mock_tracker.MockService)
		wantErr   bool
		wantOut   string
	}{
		{
			name:  "notes only",
			input: "edit 0\nnotes after\ncommit\n",
			setupMock: func(m *mock_tracker.MockService) {
				notes := "after"
				edited := original
				edited.Notes = notes
				m.EXPECT().Entries(gomock.Any(), tracker.Filter{}).Return([]tracker.IndexedEntry{{Index: 0, Entry: original}}, nil)
				m.EXPECT().Edit(gomock.Any(), 0, tracker.EditRequest{Notes: &notes}).Return(edited, nil)
			},
			wantOut: "after",
		},
		{
			name:  "moved point",
			input: "edit 0\nclick 0.9,0.1\ncommit\n",
			setupMock: func(m *mock_tracker.MockService) {
				notes := "before"
				start := affect.Position{X: 0.9, Y: 0.1}
				m.EXPECT().Entries(gomock.Any(), tracker.Filter{}).Return([]tracker.IndexedEntry{{Index: 0, Entry: original}}, nil)
				m.EXPECT().Edit(gomock.Any(), 0, tracker.EditRequest{Start: &start, Notes: &notes}).
					Return(emotionlog.Entry{Emotion: "Excited", Valence: 0.8, Arousal: 0.8, Timestamp: original.Timestamp}, nil)
			},
			wantOut: "Excited",
		},
		{
			name:  "rejected edit is reported",
			input: "edit 0\nnotes x\ncommit\n",
			setupMock: func(m *mock_tracker.MockService) {
				m.EXPECT().Entries(gomock.Any(), gomock.Any()).Return([]tracker.IndexedEntry{{Index: 0, Entry: original}}, nil)
				m.EXPECT().Edit(gomock.Any(), 0, gomock.Any()).Return(emotionlog.Entry{}, tracker.ErrInvalidRequest)
			},
			wantOut: "Could not save: invalid request",
		},
		{
			name:  "service failure stops the session",
			input: "edit 0\n",
			setupMock: func(m *mock_tracker.MockService) {
				m.EXPECT().Entries(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mock_tracker.NewMockService(ctrl)
			tt.setupMock(svc)
			var out bytes.Buffer

			err := NewRecorderCLI(svc, strings.NewReader(tt.input), &out).Run(context.Background())
			if tt.wantErr {
				assert.ErrorContains(t, err, "connection refused")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestFormatPosition(t *testing.T) {
	p := affect.Position{X: 0.25, Y: 1}
	assert.Equal(t, "0.25,1", FormatPosition(p))

	got, err := ParsePosition(FormatPosition(p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
