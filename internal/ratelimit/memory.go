package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often Incr walks the whole key space to evict
// addresses that have gone quiet.
const sweepInterval = time.Minute

type memoryEntry struct {
	hits   []time.Time
	window time.Duration
}

// MemoryStore is a sliding-window counter held in process memory. It keeps
// the timestamp of every hit inside the window per key, prunes stale ones on
// each increment, and periodically evicts keys whose hits have all expired so
// address churn does not grow the map without bound. Accuracy is per-process
// only; use the Redis store when running more than one replica.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.window = window

	kept := e.hits[:0]
	for _, t := range e.hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	e.hits = kept

	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}

	return int64(len(e.hits)), nil
}

// sweep drops every key whose newest hit has slid out of its own window.
// Caller holds the lock.
func (s *MemoryStore) sweep(now time.Time) {
	for key, e := range s.entries {
		if len(e.hits) == 0 || !e.hits[len(e.hits)-1].After(now.Add(-e.window)) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}
