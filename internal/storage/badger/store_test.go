package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(common.NewSilentLogger(), t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Put(ctx, "fp-1", []byte(`{"status":"success"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Payload) != `{"status":"success"}` {
		t.Errorf("unexpected payload %s", got.Payload)
	}
	if !got.StoredAt.Equal(fixed) {
		t.Errorf("expected StoredAt %v, got %v", fixed, got.StoredAt)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(context.Background(), "nonexistent-key")
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Upsert(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	s.Put(ctx, "k", []byte("v1"))
	s.Put(ctx, "k", []byte("v2"))

	got, _ := s.Get(ctx, "k")
	if string(got.Payload) != "v2" {
		t.Errorf("expected v2, got %s", got.Payload)
	}
}

func TestStore_DeleteAndKeys(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	s.Put(ctx, "a", []byte("1"))
	s.Put(ctx, "b", []byte("2"))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("expected [b], got %v", keys)
	}
}
