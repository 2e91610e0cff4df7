package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
)

// CacheRecord is one cached payload stored in BadgerDB.
type CacheRecord struct {
	Key      string `badgerhold:"key"`
	Payload  []byte
	StoredAt time.Time
}

// Store implements interfaces.Store on top of badgerhold.
type Store struct {
	db     *BadgerDB
	logger *common.Logger
	now    func() time.Time
}

// NewStore opens a Badger-backed Store in dir.
func NewStore(logger *common.Logger, dir string) (*Store, error) {
	db, err := NewBadgerDB(logger, dir)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Get retrieves the record for key.
func (s *Store) Get(_ context.Context, key string) (interfaces.StoredValue, error) {
	var rec CacheRecord
	if err := s.db.Store().Get(key, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return interfaces.StoredValue{}, interfaces.ErrNotFound
		}
		return interfaces.StoredValue{}, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return interfaces.StoredValue{Payload: rec.Payload, StoredAt: rec.StoredAt}, nil
}

// Put upserts the record for key, stamping it with the current time.
func (s *Store) Put(_ context.Context, key string, payload []byte) error {
	rec := CacheRecord{
		Key:      key,
		Payload:  payload,
		StoredAt: s.now(),
	}
	if err := s.db.Store().Upsert(key, &rec); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes the record for key.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Store().Delete(key, CacheRecord{})
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	var recs []CacheRecord
	if err := s.db.Store().Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys := make([]string, 0, len(recs))
	for _, r := range recs {
		keys = append(keys, r.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
