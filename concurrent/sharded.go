package concurrent

import (
	"sync"
	"time"

	"github.com/tobantal/cachekit/cache"
	"github.com/tobantal/cachekit/internal/util"
)

// Factory builds one inner cache per shard with the given per-shard
// capacity. Each call must return a fresh instance — shards never
// share policy or listener state.
type Factory[K comparable, V any] func(shardCapacity int) cache.Cache[K, V]

// Sharded splits a cache into independently locked partitions routed
// by key hash, so operations on unrelated keys never contend. It
// trades a hash per operation for near-linear scalability as long as
// the key distribution does not pile onto one shard; prefer SafeCache
// when contention is low.
//
// Whole-cache views (Len, Clear, RemoveExpired) visit the shards
// sequentially and are best-effort aggregates, not linearizable
// snapshots.
type Sharded[K comparable, V any] struct {
	shards   []*lockedShard[K, V]
	totalCap int
}

// lockedShard pairs one inner cache with its own lock. Get takes the
// write lock for the same reason SafeCache.Get does: a hit mutates
// policy metadata.
type lockedShard[K comparable, V any] struct {
	mu sync.RWMutex
	c  cache.Cache[K, V]
}

// NewSharded builds shardCount inner caches via factory, splitting
// totalCapacity evenly (rounded up, at least 1 per shard).
// shardCount <= 0 picks a default from CPU parallelism. Panics on a
// non-positive totalCapacity, a nil factory, or a factory returning
// nil.
func NewSharded[K comparable, V any](totalCapacity, shardCount int, factory Factory[K, V]) *Sharded[K, V] {
	if totalCapacity <= 0 {
		panic("concurrent: total capacity must be > 0")
	}
	if factory == nil {
		panic("concurrent: factory must not be nil")
	}
	if shardCount <= 0 {
		shardCount = util.ReasonableShardCount()
	}

	perShard := (totalCapacity + shardCount - 1) / shardCount
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*lockedShard[K, V], shardCount)
	for i := range shards {
		c := factory(perShard)
		if c == nil {
			panic("concurrent: factory returned nil cache")
		}
		shards[i] = &lockedShard[K, V]{c: c}
	}
	return &Sharded[K, V]{shards: shards, totalCap: totalCapacity}
}

// Get returns the value for key, locking only the owning shard.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.c.Get(key)
}

// Put inserts or updates key→value in the owning shard.
func (s *Sharded[K, V]) Put(key K, value V) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.c.Put(key, value)
}

// PutWithTTL inserts or updates key→value with a per-key TTL override.
func (s *Sharded[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.c.PutWithTTL(key, value, ttl)
}

// Remove deletes key from its shard if present.
func (s *Sharded[K, V]) Remove(key K) bool {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.c.Remove(key)
}

// Contains reports presence; read-only, shared lock on the shard.
func (s *Sharded[K, V]) Contains(key K) bool {
	sh := s.shard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.c.Contains(key)
}

// Clear empties every shard, one at a time.
func (s *Sharded[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.c.Clear()
		sh.mu.Unlock()
	}
}

// Len sums the shard sizes. Best-effort: shards are read one after
// another, so concurrent writers can skew the total.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += sh.c.Len()
		sh.mu.RUnlock()
	}
	return total
}

// Cap returns the total capacity the cache was constructed with. The
// per-shard ceilings may sum slightly above it.
func (s *Sharded[K, V]) Cap() int { return s.totalCap }

// RemoveExpired sweeps every shard and returns the total removed.
func (s *Sharded[K, V]) RemoveExpired() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += sh.c.RemoveExpired()
		sh.mu.Unlock()
	}
	return total
}

// ShardCount returns the number of shards.
func (s *Sharded[K, V]) ShardCount() int { return len(s.shards) }

// ShardLen returns the entry count of shard i. Panics if i is out of
// range.
func (s *Sharded[K, V]) ShardLen(i int) int {
	sh := s.shards[i]
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.c.Len()
}

// WithShardLock runs fn on key's shard under its exclusive lock,
// making a multi-call sequence on that one shard atomic. Cross-shard
// atomicity is out of contract.
func (s *Sharded[K, V]) WithShardLock(key K, fn func(c cache.Cache[K, V])) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fn(sh.c)
}

// ForEachShard runs fn on every shard in order, each under its
// exclusive lock.
func (s *Sharded[K, V]) ForEachShard(fn func(c cache.Cache[K, V])) {
	for _, sh := range s.shards {
		sh.mu.Lock()
		fn(sh.c)
		sh.mu.Unlock()
	}
}

// shard routes key to its owning shard by FNV-1a hash.
func (s *Sharded[K, V]) shard(key K) *lockedShard[K, V] {
	h := util.Fnv64a(key)
	return s.shards[util.ShardIndex(h, len(s.shards))]
}

var _ cache.Cache[string, int] = (*Sharded[string, int])(nil)
