// Package cache provides a generic in-memory key/value cache with
// pluggable eviction policies (LRU, LFU), optional fixed TTL expiration
// (global or per-key), and observer-style event notification.
//
// Design
//
//   - Storage: a plain map[K]V owned by one Basic instance. Every
//     resident key is also registered with the active eviction policy;
//     the two are kept in sync by construction.
//
//   - Policies: eviction (package policy, implementations in
//     policy/lru and policy/lfu) and expiration (package expiry) are
//     injected at construction and may be swapped live. A swap
//     re-registers the resident keys through the same OnInsert hook
//     used for new keys, discarding the old policy's metadata.
//
//   - TTL: expiration is lazy. Get checks the deadline before touching
//     eviction metadata, so an expired entry never refreshes its
//     position and is reported as a plain miss. RemoveExpired offers a
//     batch sweep; no background goroutine runs.
//
//   - Events: listeners receive hit/miss/insert/update/evict/remove/
//     clear synchronously, in registration order. Slow consumers go
//     behind listener.NewAsync, which fans events out to one worker
//     goroutine per listener. Package persist forwards the mutation
//     events to a file snapshot; metrics/prom exports them as
//     Prometheus counters.
//
//   - Concurrency: Basic itself is single-threaded on purpose. Wrap it
//     in concurrent.NewSafe for a single-lock cache or build a
//     concurrent.Sharded for parallel workloads.
//
// Basic usage
//
//	c := cache.New[string, int](cache.Options[string, int]{Capacity: 1024})
//	c.Put("a", 1)
//	if v, ok := c.Get("a"); ok {
//		_ = v
//	}
//
// With LFU and a per-key TTL
//
//	c := cache.New[string, string](cache.Options[string, string]{
//		Capacity: 1024,
//		Eviction: lfu.New[string](),
//		Expiry:   expiry.NewPerKey[string](time.Minute),
//	})
//	c.PutWithTTL("session", "tok", 30*time.Second)
//
// Failure semantics: construction panics on a zero capacity or nil
// policy; lookup misses are ordinary (zero, false) results; a
// panicking listener is logged and isolated. There is no partial
// failure — an operation either applies fully to map, policies and
// listeners, or (failing validation) not at all.
package cache
