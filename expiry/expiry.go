// Package expiry defines the expiration policy contract and the fixed
// time-to-live implementations used by the cache core.
//
// Expiration is orthogonal to eviction: an entry can be removed either
// by TTL or by the eviction policy on overflow. Expiration here is
// lazy — the cache checks on access and offers a batch sweep — so no
// background goroutine is required.
package expiry

import "time"

// Clock provides time in UnixNano; swap it for a fake in tests.
type Clock interface{ NowUnixNano() int64 }

type systemClock struct{}

func (systemClock) NowUnixNano() int64 { return time.Now().UnixNano() }

// SystemClock returns the wall-clock implementation used by default.
func SystemClock() Clock { return systemClock{} }

// Policy tracks per-key expiration deadlines for one cache instance.
//
// The cache core calls OnInsert for every admission and re-insert,
// OnAccess on every hit (a hook for sliding-TTL variants; the fixed
// implementations here never reset a deadline on access), and OnRemove
// on any removal. Implementations are not safe for concurrent use.
type Policy[K comparable] interface {
	// IsExpired reports whether key's deadline has passed.
	// Untracked keys never expire.
	IsExpired(key K) bool
	// OnInsert registers a deadline for key. ttl > 0 is a per-key
	// override; ttl <= 0 means "no override" and the policy applies its
	// own rule (global TTL, configured default, or no tracking).
	OnInsert(key K, ttl time.Duration)
	// OnAccess records a use of key. Fixed-TTL policies ignore it.
	OnAccess(key K)
	// OnRemove drops tracking for key (no-op if untracked).
	OnRemove(key K)
	// Clear drops all tracked deadlines.
	Clear()
	// CollectExpired returns every tracked key whose deadline has
	// passed, for batch sweeps.
	CollectExpired() []K
	// TTL returns the remaining lifetime of key. ok is false when the
	// key is untracked (lives forever); an already expired key reports
	// (0, true).
	TTL(key K) (remaining time.Duration, ok bool)
}

// None is the null policy: nothing ever expires and no metadata is
// kept. It is the default when a cache is built without expiration.
type None[K comparable] struct{}

// NewNone returns the no-expiration policy.
func NewNone[K comparable]() None[K] { return None[K]{} }

func (None[K]) IsExpired(K) bool                { return false }
func (None[K]) OnInsert(K, time.Duration)       {}
func (None[K]) OnAccess(K)                      {}
func (None[K]) OnRemove(K)                      {}
func (None[K]) Clear()                          {}
func (None[K]) CollectExpired() []K             { return nil }
func (None[K]) TTL(K) (time.Duration, bool)     { return 0, false }

var _ Policy[string] = None[string]{}
