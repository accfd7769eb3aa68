// Package prom exports cache events as Prometheus metrics. The adapter
// is an ordinary cache.Listener, so it plugs into the same chain as
// stats, logging and persistence.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tobantal/cachekit/cache"
)

// Adapter implements cache.Listener and exports one counter per event
// kind. Prometheus metric types are goroutine-safe, so one Adapter can
// observe any number of caches, sync or async.
type Adapter[K comparable, V any] struct {
	events *prometheus.CounterVec
}

// Event label values, one per listener hook.
const (
	labelHit    = "hit"
	labelMiss   = "miss"
	labelInsert = "insert"
	labelUpdate = "update"
	labelEvict  = "evict"
	labelRemove = "remove"
	labelClear  = "clear"
)

// New constructs an adapter and registers its metrics.
//   - reg:         registry to register with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New[K comparable, V any](reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter[K, V] {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter[K, V]{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "events_total",
				Help:        "Cache events by kind",
				ConstLabels: constLabels,
			},
			[]string{"event"},
		),
	}
	reg.MustRegister(a.events)
	return a
}

func (a *Adapter[K, V]) OnHit(K)          { a.events.WithLabelValues(labelHit).Inc() }
func (a *Adapter[K, V]) OnMiss(K)         { a.events.WithLabelValues(labelMiss).Inc() }
func (a *Adapter[K, V]) OnInsert(K, V)    { a.events.WithLabelValues(labelInsert).Inc() }
func (a *Adapter[K, V]) OnUpdate(K, V, V) { a.events.WithLabelValues(labelUpdate).Inc() }
func (a *Adapter[K, V]) OnEvict(K, V)     { a.events.WithLabelValues(labelEvict).Inc() }
func (a *Adapter[K, V]) OnRemove(K)       { a.events.WithLabelValues(labelRemove).Inc() }
func (a *Adapter[K, V]) OnClear(int)      { a.events.WithLabelValues(labelClear).Inc() }

// Compile-time check: the adapter is a cache.Listener.
var _ cache.Listener[string, int] = (*Adapter[string, int])(nil)
