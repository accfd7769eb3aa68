// Package queue provides an unbounded thread-safe FIFO used by the
// async listener composite. Producers never block; consumers can wait
// with a timeout so a stop request is observed within bounded latency.
package queue

import (
	"sync"
	"time"
)

// Queue is a mutex-guarded FIFO with a wake-up channel for waiters.
// The zero value is not usable; construct with New.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	signal chan struct{} // best-effort "an item arrived" wake-up
	done   chan struct{} // closed by Close
}

// New returns an empty open queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Push appends item and wakes one waiter. Returns false if the queue
// has been closed (the item is dropped).
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// PopWait dequeues the oldest item, waiting up to timeout for one to
// arrive. Returns false on timeout, or immediately after Close once
// the caller should switch to TryPop draining.
func (q *Queue[T]) PopWait(timeout time.Duration) (T, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if it, ok := q.TryPop(); ok {
			return it, true
		}
		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			var zero T
			return zero, false
		}

		select {
		case <-q.signal:
		case <-q.done:
		case <-timer.C:
			var zero T
			return zero, false
		}
	}
}

// TryPop dequeues the oldest item without waiting.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	it := q.items[0]
	var zero T
	q.items[0] = zero // release the reference for GC
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil // reset backing array once drained
	}
	return it, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close rejects further pushes and wakes all waiters. Items already
// queued stay poppable via TryPop; Close never discards them.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	close(q.done)
}
