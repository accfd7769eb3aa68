package listener

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tobantal/cachekit/cache"
	"github.com/tobantal/cachekit/internal/queue"
)

// defaultPoll bounds how long a worker sleeps between queue checks, so
// a stop request is observed within this latency even on an idle queue.
const defaultPoll = 100 * time.Millisecond

// Async fans cache events out to inner listeners, giving each one a
// dedicated worker goroutine and its own unbounded FIFO. The composite
// itself is a cache.Listener: every event is captured by value,
// enqueued for every inner listener and the calling goroutine returns
// immediately — the cache never waits on listener execution.
//
// Ordering: events are delivered to each listener in cache order
// (FIFO through its private queue). No ordering holds between
// different listeners.
//
// Stop drains every queue synchronously before joining the workers, so
// no accepted event is ever dropped. A panicking listener is recovered
// and logged per event; it never disturbs the cache or other workers.
type Async[K comparable, V any] struct {
	mu      sync.Mutex
	entries []*asyncEntry[K, V]
	stopped bool

	poll time.Duration
	log  *slog.Logger
}

type asyncEntry[K comparable, V any] struct {
	listener cache.Listener[K, V]
	q        *queue.Queue[func()]
	stopping atomic.Bool
	done     chan struct{} // closed when the worker exits
}

// NewAsync returns an empty composite. Add listeners with Add and
// always call Stop when done with it.
func NewAsync[K comparable, V any]() *Async[K, V] {
	return &Async[K, V]{poll: defaultPoll, log: slog.Default()}
}

// WithPollInterval sets the worker wake-up interval (stop latency
// bound). Returns the composite.
func (a *Async[K, V]) WithPollInterval(d time.Duration) *Async[K, V] {
	if d > 0 {
		a.poll = d
	}
	return a
}

// WithLogger sets the logger used for recovered listener panics.
// Returns the composite.
func (a *Async[K, V]) WithLogger(log *slog.Logger) *Async[K, V] {
	if log != nil {
		a.log = log
	}
	return a
}

// Add registers l and starts its worker. No-op on nil or after Stop.
func (a *Async[K, V]) Add(l cache.Listener[K, V]) {
	if l == nil {
		return
	}
	e := &asyncEntry[K, V]{
		listener: l,
		q:        queue.New[func()](),
		done:     make(chan struct{}),
	}

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.entries = append(a.entries, e)
	a.mu.Unlock()

	go a.work(e)
}

// Remove unregisters l (compared by identity), drains its queue and
// joins its worker. Returns true if l was registered.
func (a *Async[K, V]) Remove(l cache.Listener[K, V]) bool {
	if l == nil {
		return false
	}

	a.mu.Lock()
	var found *asyncEntry[K, V]
	for i, e := range a.entries {
		if e.listener == l {
			found = e
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	if found == nil {
		return false
	}
	a.stopEntry(found)
	return true
}

// Stop detaches all listeners, drains every queue and joins every
// worker. It blocks until all queued events have executed; callers
// needing a hard timeout must arrange it themselves. Idempotent.
func (a *Async[K, V]) Stop() {
	a.mu.Lock()
	entries := a.entries
	a.entries = nil
	a.stopped = true
	a.mu.Unlock()

	for _, e := range entries {
		a.stopEntry(e)
	}
}

// ListenerCount returns the number of attached listeners.
func (a *Async[K, V]) ListenerCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// QueuedEvents returns the total number of not-yet-delivered events
// across all listener queues.
func (a *Async[K, V]) QueuedEvents() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, e := range a.entries {
		total += e.q.Len()
	}
	return total
}

// ---- cache.Listener ----

func (a *Async[K, V]) OnHit(key K) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnHit(key) })
}

func (a *Async[K, V]) OnMiss(key K) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnMiss(key) })
}

func (a *Async[K, V]) OnInsert(key K, value V) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnInsert(key, value) })
}

func (a *Async[K, V]) OnUpdate(key K, oldValue, newValue V) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnUpdate(key, oldValue, newValue) })
}

func (a *Async[K, V]) OnEvict(key K, value V) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnEvict(key, value) })
}

func (a *Async[K, V]) OnRemove(key K) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnRemove(key) })
}

func (a *Async[K, V]) OnClear(count int) {
	a.broadcast(func(l cache.Listener[K, V]) { l.OnClear(count) })
}

// ---- internals ----

// broadcast enqueues one bound call per listener. Arguments were
// already captured by value in the caller's closure.
func (a *Async[K, V]) broadcast(call func(cache.Listener[K, V])) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		l := e.listener
		e.q.Push(func() { call(l) })
	}
}

// work is the per-listener delivery loop: timed pops while running,
// then a synchronous drain once stopping so nothing is lost.
func (a *Async[K, V]) work(e *asyncEntry[K, V]) {
	defer close(e.done)

	for !e.stopping.Load() {
		if call, ok := e.q.PopWait(a.poll); ok {
			a.deliver(call)
		}
	}
	for {
		call, ok := e.q.TryPop()
		if !ok {
			return
		}
		a.deliver(call)
	}
}

// deliver runs one queued call, recovering listener panics so they
// stay contained to this worker.
func (a *Async[K, V]) deliver(call func()) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("cachekit: async listener panicked", "panic", r)
		}
	}()
	call()
}

// stopEntry signals the worker, wakes it and waits for the drain to
// finish.
func (a *Async[K, V]) stopEntry(e *asyncEntry[K, V]) {
	e.stopping.Store(true)
	e.q.Close()
	<-e.done
}

var _ cache.Listener[string, int] = (*Async[string, int])(nil)
