package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the key has no entry.
var ErrNotFound = errors.New("entry not found")

// StoredValue is a raw cache payload with the time it was written.
type StoredValue struct {
	Payload  []byte
	StoredAt time.Time
}

// Store is the minimal key-value contract behind the response cache.
// Keys are request fingerprints; payloads are opaque encoded bytes.
// Implementations can be swapped (file, memory, badger, sqlite).
type Store interface {
	Get(ctx context.Context, key string) (StoredValue, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
