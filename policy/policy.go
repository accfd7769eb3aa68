// Package policy defines the eviction policy contract used by the cache
// core. A policy tracks per-key recency/frequency metadata and picks a
// victim when the cache overflows; it never stores values and never
// touches the cache map itself.
package policy

// Eviction tracks access metadata for the keys resident in one cache
// instance and selects the next victim on overflow.
//
// The cache core keeps every resident key registered with exactly one
// Eviction instance: OnInsert on admission, OnAccess on every hit or
// update, OnRemove on any removal (explicit, eviction or expiration).
// OnAccess/OnRemove on an unknown key are no-ops.
//
// Implementations are not safe for concurrent use; synchronization is
// the job of the concurrency wrappers, like everything else in the core.
type Eviction[K comparable] interface {
	// OnAccess records a use of key (no-op if untracked).
	OnAccess(key K)
	// OnInsert starts tracking a new key.
	OnInsert(key K)
	// OnRemove stops tracking key (no-op if untracked).
	OnRemove(key K)
	// SelectVictim returns the key to evict next without removing it.
	// It panics when no keys are tracked: the cache core only evicts at
	// capacity, so an empty policy here means the caller broke the
	// map/policy registration invariant.
	SelectVictim() K
	// Empty reports whether no keys are tracked.
	Empty() bool
	// Len returns the number of tracked keys.
	Len() int
	// Clear drops all tracked metadata.
	Clear()
}
