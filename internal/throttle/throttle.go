// Package throttle enforces a process-wide minimum interval between outbound
// requests. One Throttle is shared by every upstream.
package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/ukdata-mcp/internal/metrics"
)

// Throttle spaces calls at least 1/rate seconds apart. The zero value is not
// usable; construct with New.
type Throttle struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	current  float64
	lastCall time.Time
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New creates a Throttle. Metrics may be nil.
func New(m *metrics.Metrics) *Throttle {
	return &Throttle{
		limiter: rate.NewLimiter(rate.Inf, 1),
		metrics: m,
		now:     time.Now,
	}
}

// Acquire blocks until a call at callsPerSecond is permitted, then records
// the call. A rate of zero or less disables throttling. Acquire returns early
// with the context error if ctx is done while waiting.
func (t *Throttle) Acquire(ctx context.Context, callsPerSecond float64) error {
	start := t.now()

	t.mu.Lock()
	if callsPerSecond <= 0 {
		t.lastCall = start
		t.mu.Unlock()
		return nil
	}
	if callsPerSecond != t.current {
		t.limiter.SetLimitAt(start, rate.Limit(callsPerSecond))
		t.current = callsPerSecond
	}
	limiter := t.limiter
	t.mu.Unlock()

	// burst 1: each Wait reserves the next slot, so concurrent callers are
	// serialised by the limiter itself.
	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	t.lastCall = t.now()
	t.mu.Unlock()

	t.metrics.ThrottleWait(t.now().Sub(start))
	return nil
}

// LastCall returns the time the most recent Acquire completed.
func (t *Throttle) LastCall() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastCall
}
