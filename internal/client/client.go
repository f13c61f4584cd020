// Package client talks to a circumplex server and implements tracker.Service
// over its HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/server"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

const DefaultMaxRetryAttempts = 3

// APIError is a non-2xx response from the server. It unwraps to the
// sentinel error named by the response code, when there is one.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return server.SentinelFor(e.Code)
}

func (e *APIError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

var _ tracker.Service = (*Client)(nil)

// NewClient returns a client for the server at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

// call sends one request. Only GET requests are retried: log indexes shift
// after every change, so replaying a write could hit the wrong entry.
func (c *Client) call(ctx context.Context, method, path string, build func(*resty.Request), result any) error {
	send := func() error {
		req := c.httpClient.R().
			SetContext(ctx).
			SetError(&server.ErrorResponse{})
		if result != nil {
			req.SetResult(result)
		}
		if build != nil {
			build(req)
		}

		response, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("httpClient.%s(%s) > %w", method, path, err)
		}
		if response.IsError() {
			apiErr := &APIError{StatusCode: response.StatusCode(), Message: response.String()}
			if body, ok := response.Error().(*server.ErrorResponse); ok && body.Error != "" {
				apiErr.Message = body.Error
				apiErr.Code = body.Code
			}
			return apiErr
		}
		return nil
	}

	if method != http.MethodGet {
		return send()
	}
	return retry.Do(
		func() error {
			err := send()
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.retryable() {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func filterParams(filter tracker.Filter) map[string]string {
	params := map[string]string{}
	if filter.Days > 0 {
		params["days"] = strconv.Itoa(filter.Days)
	}
	if filter.Collection != "" {
		params["collection"] = filter.Collection
	}
	if filter.Tag != "" {
		params["tag"] = filter.Tag
	}
	return params
}

func entryPath(index int, suffix string) string {
	return "/api/entries/" + strconv.Itoa(index) + suffix
}

func (c *Client) Entries(ctx context.Context, filter tracker.Filter) ([]tracker.IndexedEntry, error) {
	var entries []tracker.IndexedEntry
	err := c.call(ctx, http.MethodGet, "/api/entries", func(r *resty.Request) {
		r.SetQueryParams(filterParams(filter))
	}, &entries)
	return entries, err
}

func (c *Client) Log(ctx context.Context, req tracker.LogRequest) (emotionlog.Entry, error) {
	var entry emotionlog.Entry
	err := c.call(ctx, http.MethodPost, "/api/entries", func(r *resty.Request) {
		r.SetBody(req)
	}, &entry)
	return entry, err
}

func (c *Client) Edit(ctx context.Context, index int, req tracker.EditRequest) (emotionlog.Entry, error) {
	var entry emotionlog.Entry
	err := c.call(ctx, http.MethodPut, entryPath(index, ""), func(r *resty.Request) {
		r.SetBody(req)
	}, &entry)
	return entry, err
}

func (c *Client) Delete(ctx context.Context, index int) error {
	return c.call(ctx, http.MethodDelete, entryPath(index, ""), nil, nil)
}

func (c *Client) Undo(ctx context.Context) (bool, error) {
	var resp server.UndoResponse
	if err := c.call(ctx, http.MethodPost, "/api/undo", nil, &resp); err != nil {
		return false, err
	}
	return resp.Undone, nil
}

func (c *Client) Summary(ctx context.Context, filter tracker.Filter, topN int) (statistics.Summary, error) {
	var summary statistics.Summary
	err := c.call(ctx, http.MethodGet, "/api/stats", func(r *resty.Request) {
		r.SetQueryParams(filterParams(filter))
		if topN > 0 {
			r.SetQueryParam("top", strconv.Itoa(topN))
		}
	}, &summary)
	return summary, err
}

func (c *Client) Trend(ctx context.Context, filter tracker.Filter) (statistics.Trend, error) {
	var trend statistics.Trend
	err := c.call(ctx, http.MethodGet, "/api/trend", func(r *resty.Request) {
		r.SetQueryParams(filterParams(filter))
	}, &trend)
	return trend, err
}

func (c *Client) Import(ctx context.Context, entries []emotionlog.Entry) (emotionlog.ImportResult, error) {
	if entries == nil {
		entries = []emotionlog.Entry{}
	}
	var result emotionlog.ImportResult
	err := c.call(ctx, http.MethodPost, "/api/import", func(r *resty.Request) {
		r.SetBody(entries)
	}, &result)
	return result, err
}

func (c *Client) Collections(ctx context.Context) ([]journal.Collection, error) {
	var collections []journal.Collection
	err := c.call(ctx, http.MethodGet, "/api/collections", nil, &collections)
	return collections, err
}

func (c *Client) AddCollection(ctx context.Context, name string) (journal.Collection, error) {
	var collection journal.Collection
	err := c.call(ctx, http.MethodPost, "/api/collections", func(r *resty.Request) {
		r.SetBody(server.CollectionRequest{Name: name})
	}, &collection)
	return collection, err
}

func (c *Client) RemoveCollection(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/collections/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, nil)
}

func (c *Client) AssignCollection(ctx context.Context, index int, id string) error {
	return c.call(ctx, http.MethodPut, entryPath(index, "/collection"), func(r *resty.Request) {
		r.SetBody(server.AssignRequest{Collection: id})
	}, nil)
}

func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	err := c.call(ctx, http.MethodGet, "/api/tags", nil, &tags)
	return tags, err
}

func (c *Client) TagEntry(ctx context.Context, index int, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return c.call(ctx, http.MethodPut, entryPath(index, "/tags"), func(r *resty.Request) {
		r.SetBody(server.TagsRequest{Tags: tags})
	}, nil)
}
