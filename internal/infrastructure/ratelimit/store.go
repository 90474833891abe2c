// Package ratelimit keeps per-client fixed-window counters in process memory.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/stylematch/waitlist/internal/core/ports"
)

// Store counts requests per client key in fixed windows. A window opens on
// the first request from a key and lasts window; once it has elapsed the
// next request opens a new one. Every request counts, admitted or not, the
// same as the Redis limiter.
type Store struct {
	mu           sync.Mutex
	entries      map[string]*storeEntry
	limit        int
	window       time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type storeEntry struct {
	count       int
	windowStart time.Time
}

type StoreOption func(*Store)

// WithCleanupEvery sets the janitor interval; zero disables it.
func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(limit int, window time.Duration, opts ...StoreOption) *Store {
	if limit <= 0 {
		limit = 1
	}
	s := &Store{
		entries:      make(map[string]*storeEntry),
		limit:        limit,
		window:       window,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow implements ports.RateLimiter. It never fails.
func (s *Store) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	now := s.now()

	s.mu.Lock()
	ent, ok := s.entries[key]
	if !ok || now.Sub(ent.windowStart) >= s.window {
		ent = &storeEntry{windowStart: now}
		s.entries[key] = ent
	}
	ent.count++
	count, start := ent.count, ent.windowStart
	s.mu.Unlock()

	d := ports.RateDecision{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: max(s.limit-count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = start.Add(s.window).Sub(now)
	}
	return d, nil
}

// Len reports how many client windows are tracked.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup drops windows that have already closed.
func (s *Store) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if now.Sub(ent.windowStart) >= s.window {
			delete(s.entries, k)
		}
	}
}

// StartJanitor runs Cleanup periodically until ctx is done.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
