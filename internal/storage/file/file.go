// Package file provides a Store that keeps one JSON file per key in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
)

const ext = ".json"

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store writes each payload to <dir>/<key>.json. The write time is the file's
// modification time, so entries age even if nothing reads them.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(s.dir, key+ext), nil
}

// Get reads the payload for key.
func (s *Store) Get(_ context.Context, key string) (interfaces.StoredValue, error) {
	p, err := s.path(key)
	if err != nil {
		return interfaces.StoredValue{}, err
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return interfaces.StoredValue{}, interfaces.ErrNotFound
		}
		return interfaces.StoredValue{}, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return interfaces.StoredValue{}, fmt.Errorf("failed to read %s: %w", p, err)
	}

	return interfaces.StoredValue{Payload: data, StoredAt: info.ModTime()}, nil
}

// Put writes payload via a temp file and rename so readers never see a torn file.
func (s *Store) Put(_ context.Context, key string, payload []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename into %s: %w", p, err)
	}
	return nil
}

// Delete removes the file for key. Missing files are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// Keys lists the keys of all entry files.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
