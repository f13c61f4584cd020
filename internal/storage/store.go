// Package storage persists named JSON blobs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid key")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

//go:generate mockgen -source=store.go -destination=../mocks/storage/mock_store.go -package=mock_storage

// KeyValueStore holds opaque values under short names.
// Writes are last-write-wins per key.
type KeyValueStore interface {
	// Get returns ErrNotFound when nothing was stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutAll writes several keys at once.
	PutAll(ctx context.Context, values map[string][]byte) error
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return nil
}
