// Package cache provides the process-wide, time-boxed memoization used by
// the advisory service: weather results keyed by rounded coordinate and
// advisory text keyed by location and language.
//
// The store has no background sweeper; expired entries are evicted lazily on
// the next lookup. There is no size bound: steady-state growth is limited by
// the active key set and the TTL. Concurrent access is safe, but Get/Set is
// not an atomic check-and-set -- two concurrent misses for the same key both
// fetch and the later Set overwrites, which is redundant work, not
// corruption.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// Clock supplies the current time. Injecting it keeps TTL behavior
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// entry pairs a cached value with the time it was stored.
type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTLStore is a mutex-guarded key-value store with a fixed validity window.
type TTLStore[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	clock   Clock
}

// NewTTLStore creates a store with the given validity window. If clock is
// nil, the system clock is used.
func NewTTLStore[V any](ttl time.Duration, clock Clock) *TTLStore[V] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TTLStore[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached value for key if it exists and is still within the
// validity window. An expired entry is deleted and reported as a miss.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if s.clock.Now().Sub(e.fetchedAt) >= s.ttl {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores the value for key, overwriting any prior entry, and stamps it
// with the current time.
func (s *TTLStore[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, fetchedAt: s.clock.Now()}
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been evicted.
func (s *TTLStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Purge removes all entries.
func (s *TTLStore[V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

// CoordinateKey derives a cache key from a coordinate pair, rounding both
// components to 4 decimal places so that near-identical coordinates collapse
// onto one entry.
func CoordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// AdviceKey derives a cache key for advisory text from the location identity
// and language.
func AdviceKey(locationID, lang string) string {
	return locationID + "|" + lang
}
