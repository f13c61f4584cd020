package server

import (
	"errors"
	"net/http"

	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/exchange"
	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/statistics"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Code names the sentinel error behind the failure, if any.
	Code string `json:"code,omitempty"`
}

type errorCode struct {
	code   string
	err    error
	status int
}

var errorCodes = []errorCode{
	{code: "index_out_of_range", err: emotionlog.ErrIndexOutOfRange, status: http.StatusNotFound},
	{code: "collection_not_found", err: journal.ErrCollectionNotFound, status: http.StatusNotFound},
	{code: "invalid_request", err: tracker.ErrInvalidRequest, status: http.StatusBadRequest},
	{code: "unknown_emotion", err: tracker.ErrUnknownEmotion, status: http.StatusBadRequest},
	{code: "nothing_to_change", err: tracker.ErrNothingToChange, status: http.StatusBadRequest},
	{code: "invalid_import", err: exchange.ErrInvalidImport, status: http.StatusBadRequest},
	{code: "not_enough_history", err: statistics.ErrNotEnoughHistory, status: http.StatusBadRequest},
}

// statusOf maps an error to its HTTP status and code.
func statusOf(err error) (int, string) {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.status, c.code
		}
	}
	return http.StatusInternalServerError, ""
}

// SentinelFor returns the error a code stands for, or nil for unknown codes.
func SentinelFor(code string) error {
	for _, c := range errorCodes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
