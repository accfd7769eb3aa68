// Package persist mirrors cache contents into an external store. It is
// composed entirely through the listener mechanism: the core never
// calls a store directly and makes no assumption about when one
// flushes.
package persist

import "github.com/tobantal/cachekit/codec"

// Store is the persistence collaborator contract. Put/Delete/Clear
// mutate the stored state; whether each mutation hits disk immediately
// is the implementation's business (see Snapshot's auto-flush flag).
type Store[K comparable, V any] interface {
	// Load reads the persisted entries, if any.
	Load() ([]codec.Entry[K, V], error)
	// SaveAll replaces the persisted state with entries.
	SaveAll(entries []codec.Entry[K, V]) error
	// Put upserts one pair.
	Put(key K, value V) error
	// Delete removes one key (no-op if absent).
	Delete(key K) error
	// Clear removes everything.
	Clear() error
	// Flush forces pending state to durable storage.
	Flush() error
	// Exists reports whether persisted state is present.
	Exists() bool
}
