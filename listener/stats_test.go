package listener

import (
	"testing"

	"github.com/tobantal/cachekit/cache"
)

func TestStats_CountsEvents(t *testing.T) {
	t.Parallel()

	st := NewStats[string, int]()
	c := cache.New[string, int](cache.Options[string, int]{Capacity: 2})
	c.AddListener(st)

	c.Get("a")    // miss
	c.Put("a", 1) // insert
	c.Get("a")    // hit
	c.Put("a", 2) // update
	c.Put("b", 3) // insert
	c.Put("c", 4) // evict + insert
	c.Remove("c") // remove
	c.Clear()     // clear

	if st.Hits() != 1 || st.Misses() != 1 {
		t.Fatalf("hits/misses want 1/1, got %d/%d", st.Hits(), st.Misses())
	}
	if st.Inserts() != 3 || st.Updates() != 1 {
		t.Fatalf("inserts/updates want 3/1, got %d/%d", st.Inserts(), st.Updates())
	}
	if st.Evictions() != 1 || st.Removes() != 1 || st.Clears() != 1 {
		t.Fatalf("evict/remove/clear want 1/1/1, got %d/%d/%d",
			st.Evictions(), st.Removes(), st.Clears())
	}
}

func TestStats_HitRate(t *testing.T) {
	t.Parallel()

	st := NewStats[string, int]()
	if st.HitRate() != 0 {
		t.Fatal("hit rate before any request must be 0")
	}

	st.OnHit("k")
	st.OnHit("k")
	st.OnHit("k")
	st.OnMiss("k")

	if st.TotalRequests() != 4 {
		t.Fatalf("total requests want 4, got %d", st.TotalRequests())
	}
	if got := st.HitRate(); got != 0.75 {
		t.Fatalf("hit rate want 0.75, got %v", got)
	}
}

func TestStats_Snapshot(t *testing.T) {
	t.Parallel()

	st := NewStats[string, int]()
	st.OnHit("k")
	st.OnMiss("k")
	st.OnInsert("k", 1)

	got := st.Snapshot()
	want := Counters{Hits: 1, Misses: 1, Inserts: 1}
	if got != want {
		t.Fatalf("snapshot want %+v, got %+v", want, got)
	}
}

func TestStats_Reset(t *testing.T) {
	t.Parallel()

	st := NewStats[string, int]()
	st.OnHit("k")
	st.OnInsert("k", 1)
	st.OnClear(3)

	st.Reset()
	if st.Hits() != 0 || st.Inserts() != 0 || st.Clears() != 0 {
		t.Fatal("Reset must zero every counter")
	}
}
