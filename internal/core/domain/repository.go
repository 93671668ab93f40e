package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrPersistFailed = errors.New("history could not be persisted")
)

// KeyValueStore is the text persistence backend. Values are opaque strings.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key has never been set or was deleted.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the whole value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
