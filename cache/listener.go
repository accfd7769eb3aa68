package cache

// Listener observes cache events. The core notifies all registered
// listeners synchronously, in registration order, for every event; a
// panicking listener is recovered and logged, never unwound into the
// caller. Listeners observe state, they do not own it — one listener
// may be registered with any number of caches.
//
// Embed NoopListener to implement only the hooks you need.
type Listener[K comparable, V any] interface {
	// OnHit fires when Get finds a fresh entry.
	OnHit(key K)
	// OnMiss fires when Get finds nothing, including lazily discovered
	// expiration (an expired entry surfaces exactly like a miss).
	OnMiss(key K)
	// OnInsert fires when Put admits a new key.
	OnInsert(key K, value V)
	// OnUpdate fires when Put replaces the value of an existing key.
	OnUpdate(key K, oldValue, newValue V)
	// OnEvict fires when the eviction policy pushes a victim out.
	OnEvict(key K, value V)
	// OnRemove fires on explicit removal and on expiration sweeps.
	OnRemove(key K)
	// OnClear fires after Clear with the number of entries dropped.
	OnClear(count int)
}

// NoopListener implements Listener with empty hooks. Embed it and
// override the events you care about.
type NoopListener[K comparable, V any] struct{}

func (NoopListener[K, V]) OnHit(K)             {}
func (NoopListener[K, V]) OnMiss(K)            {}
func (NoopListener[K, V]) OnInsert(K, V)       {}
func (NoopListener[K, V]) OnUpdate(K, V, V)    {}
func (NoopListener[K, V]) OnEvict(K, V)        {}
func (NoopListener[K, V]) OnRemove(K)          {}
func (NoopListener[K, V]) OnClear(int)         {}

var _ Listener[string, int] = NoopListener[string, int]{}
