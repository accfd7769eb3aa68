package expiry

import (
	"testing"
	"time"
)

func TestGlobal_FixedDeadline(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](50 * time.Millisecond).WithClock(clk)

	g.OnInsert("k", 0)
	if g.IsExpired("k") {
		t.Fatal("fresh key must not be expired")
	}

	clk.add(30 * time.Millisecond)
	if g.IsExpired("k") {
		t.Fatal("key must survive before the deadline")
	}

	// Access must not slide the deadline.
	g.OnAccess("k")
	clk.add(30 * time.Millisecond)
	if !g.IsExpired("k") {
		t.Fatal("key must expire after the deadline despite accesses")
	}
}

// Per-key overrides are ignored: the global TTL always wins.
func TestGlobal_IgnoresOverride(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](10 * time.Millisecond).WithClock(clk)

	g.OnInsert("k", time.Hour)
	clk.add(20 * time.Millisecond)
	if !g.IsExpired("k") {
		t.Fatal("global TTL must override the per-key duration")
	}
}

func TestGlobal_UnknownKeyNeverExpires(t *testing.T) {
	t.Parallel()

	g := NewGlobal[string](time.Second)
	if g.IsExpired("ghost") {
		t.Fatal("untracked key must not be expired")
	}
	if _, ok := g.TTL("ghost"); ok {
		t.Fatal("untracked key must report infinite TTL")
	}
}

func TestGlobal_CollectExpired(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](10 * time.Millisecond).WithClock(clk)

	g.OnInsert("old", 0)
	clk.add(20 * time.Millisecond)
	g.OnInsert("fresh", 0)

	expired := g.CollectExpired()
	if len(expired) != 1 || expired[0] != "old" {
		t.Fatalf("CollectExpired want [old], got %v", expired)
	}
}

func TestGlobal_TTLRemaining(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](100 * time.Millisecond).WithClock(clk)

	g.OnInsert("k", 0)
	clk.add(40 * time.Millisecond)

	rem, ok := g.TTL("k")
	if !ok || rem != 60*time.Millisecond {
		t.Fatalf("TTL want 60ms, got %v ok=%v", rem, ok)
	}

	clk.add(100 * time.Millisecond)
	rem, ok = g.TTL("k")
	if !ok || rem != 0 {
		t.Fatalf("expired TTL want 0, got %v ok=%v", rem, ok)
	}
}

func TestGlobal_RemoveAndClear(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](time.Millisecond).WithClock(clk)

	g.OnInsert("a", 0)
	g.OnInsert("b", 0)
	g.OnRemove("a")
	if g.Tracked() != 1 {
		t.Fatalf("Tracked want 1, got %d", g.Tracked())
	}
	g.Clear()
	if g.Tracked() != 0 {
		t.Fatalf("Tracked after Clear want 0, got %d", g.Tracked())
	}
}

// SetTTL affects future inserts only.
func TestGlobal_SetTTL(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	g := NewGlobal[string](10 * time.Millisecond).WithClock(clk)

	g.OnInsert("old", 0)
	g.SetTTL(time.Hour)
	g.OnInsert("new", 0)

	clk.add(20 * time.Millisecond)
	if !g.IsExpired("old") {
		t.Fatal("existing deadline must keep the old TTL")
	}
	if g.IsExpired("new") {
		t.Fatal("new key must use the new TTL")
	}
}

func TestGlobal_RejectsNonPositiveTTL(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func(){
		"construct": func() { NewGlobal[string](0) },
		"mutate":    func() { NewGlobal[string](time.Second).SetTTL(-time.Second) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s with non-positive TTL must panic", name)
				}
			}()
			fn()
		}()
	}
}
