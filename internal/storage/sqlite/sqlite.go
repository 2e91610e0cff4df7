// Package sqlite provides a Store backed by a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
)

// Store keeps cache payloads in <dir>/cache.db.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database file and schema if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key       TEXT PRIMARY KEY,
			payload   BLOB NOT NULL,
			stored_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Get returns the payload for key.
func (s *Store) Get(ctx context.Context, key string) (interfaces.StoredValue, error) {
	var payload []byte
	var storedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, stored_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.StoredValue{}, interfaces.ErrNotFound
	}
	if err != nil {
		return interfaces.StoredValue{}, fmt.Errorf("querying %s: %w", key, err)
	}
	return interfaces.StoredValue{Payload: payload, StoredAt: time.Unix(0, storedAt)}, nil
}

// Put inserts or replaces the payload for key.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, payload, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at
	`, key, payload, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys lists all keys in order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
