package persist

import (
	"log/slog"

	"github.com/tobantal/cachekit/cache"
)

// Listener forwards cache mutations to a Store: insert/update become
// upserts, evict/remove become deletes, clear wipes the store. Hits
// and misses mutate nothing and are not forwarded. Store errors are
// logged and swallowed — persistence is a side effect, never a reason
// to fail a cache operation.
//
// Wrap it in listener.NewAsync when store writes are too slow for the
// cache's call path.
type Listener[K comparable, V any] struct {
	cache.NoopListener[K, V]

	store Store[K, V]
	log   *slog.Logger
}

// NewListener adapts store to the cache event surface. Panics on a nil
// store; a nil log means slog.Default().
func NewListener[K comparable, V any](store Store[K, V], log *slog.Logger) *Listener[K, V] {
	if store == nil {
		panic("persist: store must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Listener[K, V]{store: store, log: log}
}

func (p *Listener[K, V]) OnInsert(key K, value V) {
	if err := p.store.Put(key, value); err != nil {
		p.log.Error("cachekit: persist put failed", "key", key, "error", err)
	}
}

func (p *Listener[K, V]) OnUpdate(key K, _, newValue V) {
	if err := p.store.Put(key, newValue); err != nil {
		p.log.Error("cachekit: persist put failed", "key", key, "error", err)
	}
}

func (p *Listener[K, V]) OnEvict(key K, _ V) {
	if err := p.store.Delete(key); err != nil {
		p.log.Error("cachekit: persist delete failed", "key", key, "error", err)
	}
}

func (p *Listener[K, V]) OnRemove(key K) {
	if err := p.store.Delete(key); err != nil {
		p.log.Error("cachekit: persist delete failed", "key", key, "error", err)
	}
}

func (p *Listener[K, V]) OnClear(int) {
	if err := p.store.Clear(); err != nil {
		p.log.Error("cachekit: persist clear failed", "error", err)
	}
}

// Flush forces the store to write pending state.
func (p *Listener[K, V]) Flush() error { return p.store.Flush() }

// Store returns the wrapped store.
func (p *Listener[K, V]) Store() Store[K, V] { return p.store }

var _ cache.Listener[string, int] = (*Listener[string, int])(nil)
