// Package ratelimit provides per-address request accounting behind a counter
// Store interface, so the in-process default can be swapped for a shared
// counter (Redis) without touching callers.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits for a key within a window. Incr records one hit and
// returns the number of hits currently inside the window, atomically with
// respect to concurrent calls for the same key.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter applies one tier's policy (window + ceiling) over a Store.
type Limiter struct {
	store  Store
	name   string
	window time.Duration
	max    int64
}

func NewLimiter(store Store, name string, window time.Duration, max int) *Limiter {
	return &Limiter{store: store, name: name, window: window, max: int64(max)}
}

// Allow records a hit for addr and reports whether it is within the ceiling.
// A store failure counts as allowed: rate limiting is containment, not a
// correctness gate.
func (l *Limiter) Allow(ctx context.Context, addr string) (bool, error) {
	count, err := l.store.Incr(ctx, "ratelimit:"+l.name+":"+addr, l.window)
	if err != nil {
		return true, err
	}
	return count <= l.max, nil
}

// Window exposes the tier's window for retry hints.
func (l *Limiter) Window() time.Duration {
	return l.window
}
