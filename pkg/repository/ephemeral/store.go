// Package ephemeral provides a memory-resident keyed store whose entries are
// evicted by periodic sweeps once their time-to-live has elapsed.
package ephemeral

import (
	"sync"
	"time"
)

// Policy selects which timestamp an entry's TTL is measured from.
type Policy int

const (
	// Sliding measures from the last successful read.
	Sliding Policy = iota
	// Fixed measures from creation only.
	Fixed
)

func (p Policy) String() string {
	if p == Fixed {
		return "fixed"
	}
	return "sliding"
}

// Entry is a stored value with its bookkeeping timestamps.
type Entry[V any] struct {
	Value          V
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

type config struct {
	now func() time.Time
}

// Option configures a Store.
type Option func(*config)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Store is a map guarded by a single mutex. The zero value is not usable;
// construct with New.
type Store[K comparable, V any] struct {
	name   string
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	entries map[K]*Entry[V]
}

// New creates an empty store. name identifies the store in logs and metrics.
func New[K comparable, V any](name string, policy Policy, opts ...Option) *Store[K, V] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[K, V]{
		name:    name,
		policy:  policy,
		now:     cfg.now,
		entries: make(map[K]*Entry[V]),
	}
}

func (s *Store[K, V]) Name() string { return s.name }

func (s *Store[K, V]) Policy() Policy { return s.policy }

// Put inserts or overwrites key. Both timestamps are reset.
func (s *Store[K, V]) Put(key K, value V) {
	now := s.now()
	s.mu.Lock()
	s.entries[key] = &Entry[V]{Value: value, CreatedAt: now, LastAccessedAt: now}
	s.mu.Unlock()
}

// Get returns the value for key. On a sliding store a hit refreshes the
// entry's last-access time. Entries past their TTL are still returned until
// a sweep removes them.
func (s *Store[K, V]) Get(key K) (V, bool) {
	e, ok := s.Entry(key)
	return e.Value, ok
}

// Entry is Get returning the bookkeeping timestamps as of after the read.
func (s *Store[K, V]) Entry(key K) (Entry[V], bool) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry[V]{}, false
	}
	if s.policy == Sliding {
		e.LastAccessedAt = now
	}
	return *e, true
}

// Delete removes key and reports whether it was present.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Sweep removes every entry whose relevant timestamp is more than ttl in the
// past and returns how many were removed.
func (s *Store[K, V]) Sweep(ttl time.Duration) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		ts := e.LastAccessedAt
		if s.policy == Fixed {
			ts = e.CreatedAt
		}
		if now.Sub(ts) > ttl {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Clear drops all entries.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}

func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
