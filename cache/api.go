package cache

import "time"

// Cache is the key/value surface shared by the unsynchronized core and
// the concurrency wrappers. Lookup misses are normal results, never
// errors. Whether an implementation is safe for concurrent use is up
// to the implementation: Basic is not, the wrappers in package
// concurrent are.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and a presence flag. An entry whose
	// TTL has passed is removed on the spot and reported as a miss.
	Get(key K) (V, bool)

	// Put inserts or updates key→value under the expiration policy's
	// default rule. Updating an existing key never evicts; inserting a
	// new key at capacity evicts exactly one victim first.
	Put(key K, value V)

	// PutWithTTL is Put with a per-key TTL override. ttl <= 0 means
	// "no override" and defers to the expiration policy.
	PutWithTTL(key K, value V, ttl time.Duration)

	// Remove deletes key if present and returns true on success.
	Remove(key K) bool

	// Contains reports whether key is present and not expired. It is
	// read-only: an expired entry is reported absent but not purged.
	Contains(key K) bool

	// Clear removes all entries.
	Clear()

	// Len returns the number of resident entries. Entries that expired
	// but were not yet swept still count.
	Len() int

	// Cap returns the configured capacity.
	Cap() int

	// RemoveExpired sweeps out every entry whose TTL has passed and
	// returns the number removed. This is the only batch expiration
	// path; Get discovers expiration lazily, one key at a time.
	RemoveExpired() int
}
