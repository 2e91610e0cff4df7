// Package memory provides an in-process Store for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
)

// entry wraps a payload with its write time and insertion order.
type entry struct {
	payload   []byte
	storedAt  time.Time
	insertIdx int64
}

// Store keeps payloads in a map bounded by maxEntries. When full, the oldest
// inserted entry is evicted. Thread-safe with sync.RWMutex.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// New creates a Store. maxEntries <= 0 means unbounded.
func New(maxEntries int) *Store {
	return &Store{
		items:      make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// SetClock replaces the time source used to stamp writes.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Get returns the stored payload for key.
func (s *Store) Get(_ context.Context, key string) (interfaces.StoredValue, error) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return interfaces.StoredValue{}, interfaces.ErrNotFound
	}
	return interfaces.StoredValue{Payload: e.payload, StoredAt: e.storedAt}, nil
}

// Put stores a copy of payload, replacing any existing entry for key.
func (s *Store) Put(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{
		payload:   append([]byte(nil), payload...),
		storedAt:  s.now(),
		insertIdx: s.nextIdx,
	}
	s.nextIdx++

	if _, exists := s.items[key]; exists {
		s.items[key] = e
		return nil
	}

	if s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		s.evictOldest()
	}

	s.items[key] = e
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Keys returns all keys in sorted order.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (s *Store) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range s.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(s.items, oldestKey)
	}
}
