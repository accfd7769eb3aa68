// Package listener provides ready-made cache.Listener implementations:
// an atomic statistics collector, an slog event logger, and an async
// composite that decouples slow listeners from the calling goroutine.
package listener

import (
	"github.com/tobantal/cachekit/internal/util"
)

// Stats counts cache events. Counters are padded atomics, so one Stats
// instance can safely observe several caches (or one cache behind the
// async composite) updated from many goroutines without false sharing.
type Stats[K comparable, V any] struct {
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	inserts   util.PaddedAtomicUint64
	updates   util.PaddedAtomicUint64
	evictions util.PaddedAtomicUint64
	removes   util.PaddedAtomicUint64
	clears    util.PaddedAtomicUint64
}

// NewStats returns a zeroed statistics listener.
func NewStats[K comparable, V any]() *Stats[K, V] {
	return &Stats[K, V]{}
}

func (s *Stats[K, V]) OnHit(K)          { s.hits.Add(1) }
func (s *Stats[K, V]) OnMiss(K)         { s.misses.Add(1) }
func (s *Stats[K, V]) OnInsert(K, V)    { s.inserts.Add(1) }
func (s *Stats[K, V]) OnUpdate(K, V, V) { s.updates.Add(1) }
func (s *Stats[K, V]) OnEvict(K, V)     { s.evictions.Add(1) }
func (s *Stats[K, V]) OnRemove(K)       { s.removes.Add(1) }
func (s *Stats[K, V]) OnClear(int)      { s.clears.Add(1) }

func (s *Stats[K, V]) Hits() uint64      { return s.hits.Load() }
func (s *Stats[K, V]) Misses() uint64    { return s.misses.Load() }
func (s *Stats[K, V]) Inserts() uint64   { return s.inserts.Load() }
func (s *Stats[K, V]) Updates() uint64   { return s.updates.Load() }
func (s *Stats[K, V]) Evictions() uint64 { return s.evictions.Load() }
func (s *Stats[K, V]) Removes() uint64   { return s.removes.Load() }
func (s *Stats[K, V]) Clears() uint64    { return s.clears.Load() }

// TotalRequests returns hits + misses.
func (s *Stats[K, V]) TotalRequests() uint64 {
	return s.hits.Load() + s.misses.Load()
}

// HitRate returns hits / (hits + misses), or 0 before any request.
func (s *Stats[K, V]) HitRate() float64 {
	total := s.TotalRequests()
	if total == 0 {
		return 0
	}
	return float64(s.hits.Load()) / float64(total)
}

// Counters is a point-in-time copy of all counters.
type Counters struct {
	Hits      uint64
	Misses    uint64
	Inserts   uint64
	Updates   uint64
	Evictions uint64
	Removes   uint64
	Clears    uint64
}

// Snapshot copies every counter. Counters are read one by one, so the
// copy may mix values from concurrent updates.
func (s *Stats[K, V]) Snapshot() Counters {
	return Counters{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Inserts:   s.inserts.Load(),
		Updates:   s.updates.Load(),
		Evictions: s.evictions.Load(),
		Removes:   s.removes.Load(),
		Clears:    s.clears.Load(),
	}
}

// Reset zeroes every counter. Not atomic as a whole: counters reset
// one by one, so a concurrent snapshot may mix old and new values.
func (s *Stats[K, V]) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.inserts.Store(0)
	s.updates.Store(0)
	s.evictions.Store(0)
	s.removes.Store(0)
	s.clears.Store(0)
}
