// Package concurrent provides the thread-safety decorations for the
// cache core: a single-lock wrapper and a sharded composition. The
// core itself stays unsynchronized, so callers pay for locking only
// when they opt in here.
package concurrent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tobantal/cachekit/cache"
	"github.com/tobantal/cachekit/internal/singleflight"
)

// ErrNoLoader is returned by GetOrLoad when no loader is supplied.
var ErrNoLoader = errors.New("concurrent: no loader provided")

// SafeCache wraps one inner cache behind a single read/write lock.
//
// Get takes the exclusive lock even though it is semantically a read:
// it touches eviction and expiration metadata as a side effect, and
// two concurrent readers updating the recency list under a shared
// lock would race. Only the genuinely read-only operations (Len, Cap,
// Contains) take the shared lock.
type SafeCache[K comparable, V any] struct {
	mu    sync.RWMutex
	inner cache.Cache[K, V]

	sf singleflight.Group[K, V]
}

// NewSafe wraps inner. Panics on nil.
func NewSafe[K comparable, V any](inner cache.Cache[K, V]) *SafeCache[K, V] {
	if inner == nil {
		panic("concurrent: inner cache must not be nil")
	}
	return &SafeCache[K, V]{inner: inner}
}

// Get returns the value for key. Exclusive lock: see the type comment.
func (s *SafeCache[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Get(key)
}

// Put inserts or updates key→value.
func (s *SafeCache[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Put(key, value)
}

// PutWithTTL inserts or updates key→value with a per-key TTL override.
func (s *SafeCache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.PutWithTTL(key, value, ttl)
}

// Remove deletes key if present.
func (s *SafeCache[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(key)
}

// Contains reports presence. Read-only by contract, so a shared lock
// suffices.
func (s *SafeCache[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Contains(key)
}

// Clear removes all entries.
func (s *SafeCache[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Clear()
}

// Len returns the number of resident entries.
func (s *SafeCache[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Len()
}

// Cap returns the configured capacity.
func (s *SafeCache[K, V]) Cap() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Cap()
}

// RemoveExpired sweeps expired entries and returns the count removed.
func (s *SafeCache[K, V]) RemoveExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.RemoveExpired()
}

// WithLock runs fn on the inner cache under the exclusive lock, making
// a check-then-act sequence of primitive calls atomic. fn must not
// retain the cache past its return.
func (s *SafeCache[K, V]) WithLock(fn func(c cache.Cache[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.inner)
}

// WithRLock runs fn under the shared lock. fn must stick to read-only
// operations (Len, Cap, Contains); calling Get here would race other
// readers on policy metadata.
func (s *SafeCache[K, V]) WithRLock(fn func(c cache.Cache[K, V])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.inner)
}

// GetOrLoad returns the value for key, invoking load on a miss and
// caching the result. Concurrent loads for the same key are coalesced:
// one caller runs load, the rest share its result. Cancelling ctx
// unblocks only the waiting caller, not the load in flight.
func (s *SafeCache[K, V]) GetOrLoad(ctx context.Context, key K, load func(ctx context.Context, key K) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}
	if load == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return s.sf.Do(ctx, key, func() (V, error) {
		// Double-check after winning the flight: another caller may
		// have stored the value between our miss and now.
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx, key)
		if err == nil {
			s.Put(key, v)
		}
		return v, err
	})
}

var _ cache.Cache[string, int] = (*SafeCache[string, int])(nil)
