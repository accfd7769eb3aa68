package queue

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	t.Parallel()

	q := New[int]()
	for i := 1; i <= 3; i++ {
		if !q.Push(i) {
			t.Fatalf("Push(%d) on open queue must succeed", i)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("Len want 3, got %d", q.Len())
	}
	for want := 1; want <= 3; want++ {
		got, ok := q.TryPop()
		if !ok || got != want {
			t.Fatalf("TryPop want %d, got %d ok=%v", want, got, ok)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop on empty queue must fail")
	}
}

func TestQueue_PopWaitTimesOut(t *testing.T) {
	t.Parallel()

	q := New[int]()
	start := time.Now()
	if _, ok := q.PopWait(20 * time.Millisecond); ok {
		t.Fatal("PopWait on empty queue must time out")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("PopWait returned before the timeout")
	}
}

func TestQueue_PopWaitWakesOnPush(t *testing.T) {
	t.Parallel()

	q := New[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push(42)
	}()

	got, ok := q.PopWait(5 * time.Second)
	if !ok || got != 42 {
		t.Fatalf("PopWait want 42, got %d ok=%v", got, ok)
	}
}

// Close rejects new pushes, wakes waiters, but keeps queued items
// available for TryPop draining.
func TestQueue_CloseKeepsItemsPoppable(t *testing.T) {
	t.Parallel()

	q := New[string]()
	q.Push("a")
	q.Push("b")
	q.Close()
	q.Close() // idempotent

	if q.Push("c") {
		t.Fatal("Push after Close must be rejected")
	}

	if _, ok := q.PopWait(time.Second); !ok {
		// PopWait on a closed queue may return immediately with ok=false
		// only once the queue is empty; with items present it must pop.
		t.Fatal("PopWait must still deliver queued items after Close")
	}
	if got, ok := q.TryPop(); !ok || got != "b" {
		t.Fatalf("TryPop want b, got %q ok=%v", got, ok)
	}
	if _, ok := q.PopWait(time.Hour); ok {
		t.Fatal("PopWait on drained closed queue must return immediately")
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	const producers, perProducer = 8, 100
	q := New[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	if got := q.Len(); got != producers*perProducer {
		t.Fatalf("Len want %d, got %d", producers*perProducer, got)
	}
	seen := 0
	for {
		if _, ok := q.TryPop(); !ok {
			break
		}
		seen++
	}
	if seen != producers*perProducer {
		t.Fatalf("drained %d items, want %d", seen, producers*perProducer)
	}
}
