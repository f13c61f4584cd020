package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/server"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/storage"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	svc, err := tracker.New(context.Background(), storage.NewMemoryStore(), tracker.WithClock(clock))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.Setup(logger, svc, nil))
	t.Cleanup(ts.Close)

	return NewClient(ts.URL, 5*time.Second, 0)
}

func TestClient_AgainstServer(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	first, err := c.Log(ctx, tracker.LogRequest{Start: &affect.Position{X: 0.1, Y: 0.9}, End: &affect.Position{X: 0.9, Y: 0.1}})
	require.NoError(t, err)
	assert.Equal(t, "Sad", first.StartEmotion)
	assert.Equal(t, "Excited", first.Emotion)

	_, err = c.Log(ctx, tracker.LogRequest{Emotion: "calm", Notes: "tea"})
	require.NoError(t, err)

	_, err = c.Log(ctx, tracker.LogRequest{Emotion: "hangry"})
	assert.ErrorIs(t, err, tracker.ErrUnknownEmotion)

	entries, err := c.Entries(ctx, tracker.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[1].Entry)

	notes := "after the walk"
	edited, err := c.Edit(ctx, 1, tracker.EditRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, first.Timestamp, edited.Timestamp)
	assert.Equal(t, notes, edited.Notes)

	_, err = c.Edit(ctx, 7, tracker.EditRequest{Notes: &notes})
	assert.ErrorIs(t, err, emotionlog.ErrIndexOutOfRange)

	collection, err := c.AddCollection(ctx, "Work")
	require.NoError(t, err)
	require.NoError(t, c.AssignCollection(ctx, 0, collection.ID))
	collections, err := c.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []journal.Collection{collection}, collections)

	require.NoError(t, c.TagEntry(ctx, 0, []string{"evening"}))
	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"evening"}, tags)

	filtered, err := c.Entries(ctx, tracker.Filter{Collection: collection.ID, Tag: "evening"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 0, filtered[0].Index)

	summary, err := c.Summary(ctx, tracker.Filter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Len(t, summary.TopEmotions, 1)

	_, err = c.Trend(ctx, tracker.Filter{})
	require.NoError(t, err)

	result, err := c.Import(ctx, []emotionlog.Entry{
		{Emotion: "Calm", Valence: 0.4, Arousal: -0.6, Timestamp: first.Timestamp},
		{Emotion: "Calm", Valence: 0.4, Arousal: -0.6, Timestamp: "2025-01-01T00:00:00.000Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, emotionlog.ImportResult{Added: 1, Skipped: 1}, result)

	require.NoError(t, c.RemoveCollection(ctx, collection.ID))
	assert.ErrorIs(t, c.RemoveCollection(ctx, collection.ID), journal.ErrCollectionNotFound)

	require.NoError(t, c.Delete(ctx, 0))
	undone, err := c.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, undone)

	entries, err = c.Entries(ctx, tracker.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestClient_TrendNotEnoughHistory(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Trend(context.Background(), tracker.Filter{})
	assert.ErrorIs(t, err, statistics.ErrNotEnoughHistory)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_Retry(t *testing.T) {
	tests := []struct {
		name          string
		failures      int32
		failStatus    int
		call          func(c *Client) error
		retryAttempts uint
		wantCalls     int32
		wantErr       bool
	}{
		{
			name:          "get recovers after server errors",
			failures:      2,
			failStatus:    http.StatusBadGateway,
			call:          func(c *Client) error { _, err := c.Tags(context.Background()); return err },
			retryAttempts: 2,
			wantCalls:     3,
		},
		{
			name:          "get gives up after the last attempt",
			failures:      5,
			failStatus:    http.StatusServiceUnavailable,
			call:          func(c *Client) error { _, err := c.Tags(context.Background()); return err },
			retryAttempts: 1,
			wantCalls:     2,
			wantErr:       true,
		},
		{
			name:          "client errors are not retried",
			failures:      5,
			failStatus:    http.StatusBadRequest,
			call:          func(c *Client) error { _, err := c.Tags(context.Background()); return err },
			retryAttempts: 3,
			wantCalls:     1,
			wantErr:       true,
		},
		{
			name:          "writes are not retried",
			failures:      5,
			failStatus:    http.StatusBadGateway,
			call:          func(c *Client) error { _, err := c.Undo(context.Background()); return err },
			retryAttempts: 3,
			wantCalls:     1,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if calls.Add(1) <= tt.failures {
					w.WriteHeader(tt.failStatus)
					_, _ = w.Write([]byte(`{"error":"try again"}`))
					return
				}
				_, _ = w.Write([]byte(`["a"]`))
			}))
			defer ts.Close()

			c := NewClient(ts.URL, time.Second, tt.retryAttempts)
			err := tt.call(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "try again")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}
