// Package cache implements the TTL read-through response cache. Entries are
// JSON documents in an interfaces.Store, keyed by Fingerprint, and validity is
// decided at read time against a caller-supplied max age.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
	"github.com/bobmcallan/ukdata-mcp/internal/metrics"
)

// Outcome classifies a cache read. Callers outside this package only need to
// know hit or not; Corrupt exists so degrade-to-miss is observable in tests.
type Outcome int

const (
	Miss Outcome = iota
	Hit
	Corrupt
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Corrupt:
		return "corrupt"
	default:
		return "miss"
	}
}

// Cache is a best-effort TTL cache over a Store.
type Cache struct {
	store   interfaces.Store
	logger  *common.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for age checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// New creates a Cache on top of store.
func New(store interfaces.Store, logger *common.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup decodes the entry for key into v when it exists, is younger than
// maxAge, and parses. It reports whether v was filled.
func (c *Cache) Lookup(ctx context.Context, key string, maxAge time.Duration, v any) bool {
	return c.Read(ctx, key, maxAge, v) == Hit
}

// Read is Lookup with the full outcome. Any failure to read or decode an
// entry yields Corrupt and leaves v in an unspecified state.
func (c *Cache) Read(ctx context.Context, key string, maxAge time.Duration, v any) Outcome {
	outcome := c.read(ctx, key, maxAge, v)
	c.metrics.CacheLookup(outcome.String())
	return outcome
}

func (c *Cache) read(ctx context.Context, key string, maxAge time.Duration, v any) Outcome {
	stored, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return Miss
		}
		c.logger.Warn().Err(err).Str("key", key).Msg("cache entry unreadable, treating as miss")
		return Corrupt
	}

	if !common.IsFresh(stored.StoredAt, c.now(), maxAge) {
		return Miss
	}

	if err := json.Unmarshal(stored.Payload, v); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, treating as miss")
		return Corrupt
	}
	return Hit
}

// Write stores v under key. Failures are logged and swallowed: a cache write
// never fails the calling operation.
func (c *Cache) Write(ctx context.Context, key string, v any) {
	err := c.write(ctx, key, v)
	c.metrics.CacheWrite(err)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write error")
	}
}

func (c *Cache) write(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.store.Put(ctx, key, payload)
}

// Prune deletes entries at least maxAge old, plus entries that cannot be read.
// It returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache keys: %w", err)
	}

	now := c.now()
	removed := 0
	for _, key := range keys {
		stored, err := c.store.Get(ctx, key)
		if errors.Is(err, interfaces.ErrNotFound) {
			continue
		}
		if err == nil && common.IsFresh(stored.StoredAt, now, maxAge) {
			continue
		}
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to prune cache entry")
			continue
		}
		removed++
	}

	c.metrics.CachePruned(removed)
	c.logger.Debug().Int("removed", removed).Int("scanned", len(keys)).Msg("cache pruned")
	return removed, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
