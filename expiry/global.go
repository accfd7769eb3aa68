package expiry

import "time"

// Global stamps every inserted key with the same fixed TTL. Per-key
// overrides passed to OnInsert are ignored — use PerKey for those.
// Deadlines are fixed, not sliding: access never extends them.
type Global[K comparable] struct {
	ttl       time.Duration
	deadlines map[K]int64 // key → absolute UnixNano deadline
	clock     Clock
}

// NewGlobal returns a policy expiring every key ttl after insertion.
// Panics if ttl is not positive.
func NewGlobal[K comparable](ttl time.Duration) *Global[K] {
	if ttl <= 0 {
		panic("expiry: global TTL must be > 0")
	}
	return &Global[K]{
		ttl:       ttl,
		deadlines: make(map[K]int64),
		clock:     SystemClock(),
	}
}

// WithClock overrides the time source (tests). Returns the policy.
func (g *Global[K]) WithClock(c Clock) *Global[K] {
	if c != nil {
		g.clock = c
	}
	return g
}

// IsExpired reports whether key's deadline has passed.
func (g *Global[K]) IsExpired(key K) bool {
	at, ok := g.deadlines[key]
	if !ok {
		return false
	}
	return g.clock.NowUnixNano() > at
}

// OnInsert stamps key with now + the global TTL. The ttl argument is
// ignored by design.
func (g *Global[K]) OnInsert(key K, _ time.Duration) {
	g.deadlines[key] = g.clock.NowUnixNano() + int64(g.ttl)
}

// OnAccess is a no-op: deadlines are fixed, not sliding.
func (g *Global[K]) OnAccess(K) {}

// OnRemove drops tracking for key.
func (g *Global[K]) OnRemove(key K) { delete(g.deadlines, key) }

// Clear drops all deadlines.
func (g *Global[K]) Clear() { clear(g.deadlines) }

// CollectExpired returns every key whose deadline has passed.
func (g *Global[K]) CollectExpired() []K {
	now := g.clock.NowUnixNano()
	var expired []K
	for k, at := range g.deadlines {
		if now > at {
			expired = append(expired, k)
		}
	}
	return expired
}

// TTL returns the remaining lifetime of key; (0, true) once expired.
func (g *Global[K]) TTL(key K) (time.Duration, bool) {
	at, ok := g.deadlines[key]
	if !ok {
		return 0, false
	}
	now := g.clock.NowUnixNano()
	if now > at {
		return 0, true
	}
	return time.Duration(at - now), true
}

// TTLSetting returns the configured global TTL.
func (g *Global[K]) TTLSetting() time.Duration { return g.ttl }

// SetTTL changes the TTL applied to future inserts. Existing deadlines
// are untouched. Panics if ttl is not positive.
func (g *Global[K]) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		panic("expiry: global TTL must be > 0")
	}
	g.ttl = ttl
}

// Tracked returns the number of keys holding a deadline.
func (g *Global[K]) Tracked() int { return len(g.deadlines) }

var _ Policy[string] = (*Global[string])(nil)
