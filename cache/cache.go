package cache

import (
	"log/slog"
	"time"

	"github.com/tobantal/cachekit/expiry"
	"github.com/tobantal/cachekit/policy"
	"github.com/tobantal/cachekit/policy/lru"
)

// Basic is the single-threaded cache core: a key→value map composed
// with one eviction policy and one expiration policy, plus a listener
// chain. It is NOT safe for concurrent use — wrap it in
// concurrent.NewSafe or build shards with concurrent.NewSharded when
// multiple goroutines are involved. Keeping the core unsynchronized
// means callers pay for locking only when they need it.
//
// Two invariants drive every operation: each resident key is tracked
// by exactly the active eviction policy, and the map never grows past
// the capacity (a new key at capacity evicts exactly one victim
// first).
type Basic[K comparable, V any] struct {
	data      map[K]V
	capacity  int
	evict     policy.Eviction[K]
	expire    expiry.Policy[K]
	listeners []Listener[K, V]
	log       *slog.Logger
}

// New constructs a Basic cache. Panics if Capacity <= 0.
func New[K comparable, V any](opt Options[K, V]) *Basic[K, V] {
	if opt.Capacity <= 0 {
		panic("cache: Capacity must be > 0")
	}
	if opt.Eviction == nil {
		opt.Eviction = lru.New[K]()
	}
	if opt.Expiry == nil {
		opt.Expiry = expiry.NewNone[K]()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Basic[K, V]{
		data:     make(map[K]V, opt.Capacity),
		capacity: opt.Capacity,
		evict:    opt.Eviction,
		expire:   opt.Expiry,
		log:      opt.Logger,
	}
}

// Get returns the value for key. Expiration is checked before any
// eviction-policy bookkeeping, so an expired key never refreshes its
// LRU/LFU position; it is purged and surfaces as an ordinary miss.
func (c *Basic[K, V]) Get(key K) (V, bool) {
	var zero V

	v, ok := c.data[key]
	if !ok {
		c.notifyMiss(key)
		return zero, false
	}
	if c.expire.IsExpired(key) {
		delete(c.data, key)
		c.evict.OnRemove(key)
		c.expire.OnRemove(key)
		c.notifyMiss(key)
		return zero, false
	}

	c.evict.OnAccess(key)
	c.expire.OnAccess(key)
	c.notifyHit(key)
	return v, true
}

// Put inserts or updates key→value under the expiration policy's
// default rule.
func (c *Basic[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, 0)
}

// PutWithTTL inserts or updates key→value with a per-key TTL override
// (ttl <= 0 defers to the policy).
//
// Updating an existing key replaces the value in place, counts as an
// access for the eviction policy and re-registers the expiration
// deadline. Note that an update therefore resurrects an entry whose
// old deadline already passed, rather than treating it as a fresh
// insert; expiration is only ever detected on Get.
func (c *Basic[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	if old, ok := c.data[key]; ok {
		c.data[key] = value
		c.evict.OnAccess(key)
		c.expire.OnRemove(key)
		c.expire.OnInsert(key, ttl)
		c.notifyUpdate(key, old, value)
		return
	}

	if len(c.data) >= c.capacity {
		c.evictOne()
	}

	c.data[key] = value
	c.evict.OnInsert(key)
	c.expire.OnInsert(key, ttl)
	c.notifyInsert(key, value)
}

// Remove deletes key if present.
func (c *Basic[K, V]) Remove(key K) bool {
	if _, ok := c.data[key]; !ok {
		return false
	}
	delete(c.data, key)
	c.evict.OnRemove(key)
	c.expire.OnRemove(key)
	c.notifyRemove(key)
	return true
}

// Contains reports presence without mutating anything: no policy
// bookkeeping, no purge of an expired entry, no events.
func (c *Basic[K, V]) Contains(key K) bool {
	if _, ok := c.data[key]; !ok {
		return false
	}
	return !c.expire.IsExpired(key)
}

// Clear removes all entries and resets both policies.
func (c *Basic[K, V]) Clear() {
	count := len(c.data)
	clear(c.data)
	c.evict.Clear()
	c.expire.Clear()
	c.notifyClear(count)
}

// Len returns the number of resident entries (expired-but-unswept
// entries included).
func (c *Basic[K, V]) Len() int { return len(c.data) }

// Cap returns the configured capacity.
func (c *Basic[K, V]) Cap() int { return c.capacity }

// RemoveExpired sweeps out every entry whose deadline has passed and
// returns the number removed. Each swept key is announced as a Remove
// so persistence listeners drop it too.
func (c *Basic[K, V]) RemoveExpired() int {
	removed := 0
	for _, key := range c.expire.CollectExpired() {
		if _, ok := c.data[key]; !ok {
			continue
		}
		delete(c.data, key)
		c.evict.OnRemove(key)
		c.expire.OnRemove(key)
		c.notifyRemove(key)
		removed++
	}
	return removed
}

// TTL returns the remaining lifetime of key. ok is false when the key
// holds no deadline (it lives until evicted or removed).
func (c *Basic[K, V]) TTL(key K) (time.Duration, bool) {
	return c.expire.TTL(key)
}

// ---- policy management ----

// SetEviction swaps the eviction policy. Every resident key is
// re-registered into the new policy via OnInsert, so the previous
// recency/frequency knowledge is discarded; with map iteration order
// the re-registration order is arbitrary. Lossy on purpose — policies
// keep incompatible metadata. Panics on nil.
func (c *Basic[K, V]) SetEviction(p policy.Eviction[K]) {
	if p == nil {
		panic("cache: eviction policy must not be nil")
	}
	c.evict = p
	for key := range c.data {
		p.OnInsert(key)
	}
}

// SetExpiry swaps the expiration policy. Resident keys are
// re-registered with no per-key override, so the new policy's default
// rule decides their deadlines; previous deadlines are discarded.
// Panics on nil.
func (c *Basic[K, V]) SetExpiry(p expiry.Policy[K]) {
	if p == nil {
		panic("cache: expiration policy must not be nil")
	}
	c.expire = p
	for key := range c.data {
		p.OnInsert(key, 0)
	}
}

// ---- listener management ----

// AddListener registers l. Listeners fire synchronously and in
// registration order; wrap slow ones in listener.NewAsync.
func (c *Basic[K, V]) AddListener(l Listener[K, V]) {
	if l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters l (compared by identity). Returns true
// if it was registered.
func (c *Basic[K, V]) RemoveListener(l Listener[K, V]) bool {
	for i, reg := range c.listeners {
		if reg == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ---- internals ----

// evictOne removes the policy's victim. The value is captured before
// deletion so listeners receive it with the event.
func (c *Basic[K, V]) evictOne() {
	victim := c.evict.SelectVictim()
	value, ok := c.data[victim]
	if !ok {
		// The policy tracked a key the map does not hold: the
		// registration invariant is broken, most likely by sharing a
		// policy instance between caches.
		panic("cache: eviction victim not resident")
	}
	delete(c.data, victim)
	c.evict.OnRemove(victim)
	c.expire.OnRemove(victim)
	c.notifyEvict(victim, value)
}

// fire runs fn against every listener, isolating panics so one broken
// listener cannot take down the caller or its peers. The empty-chain
// check keeps listener-free caches free of dispatch overhead.
func (c *Basic[K, V]) fire(fn func(Listener[K, V])) {
	if len(c.listeners) == 0 {
		return
	}
	for _, l := range c.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.log.Error("cachekit: listener panicked", "panic", r)
				}
			}()
			fn(l)
		}()
	}
}

func (c *Basic[K, V]) notifyHit(key K)  { c.fire(func(l Listener[K, V]) { l.OnHit(key) }) }
func (c *Basic[K, V]) notifyMiss(key K) { c.fire(func(l Listener[K, V]) { l.OnMiss(key) }) }

func (c *Basic[K, V]) notifyInsert(key K, value V) {
	c.fire(func(l Listener[K, V]) { l.OnInsert(key, value) })
}

func (c *Basic[K, V]) notifyUpdate(key K, oldValue, newValue V) {
	c.fire(func(l Listener[K, V]) { l.OnUpdate(key, oldValue, newValue) })
}

func (c *Basic[K, V]) notifyEvict(key K, value V) {
	c.fire(func(l Listener[K, V]) { l.OnEvict(key, value) })
}

func (c *Basic[K, V]) notifyRemove(key K) { c.fire(func(l Listener[K, V]) { l.OnRemove(key) }) }
func (c *Basic[K, V]) notifyClear(count int) {
	c.fire(func(l Listener[K, V]) { l.OnClear(count) })
}

var _ Cache[string, int] = (*Basic[string, int])(nil)
