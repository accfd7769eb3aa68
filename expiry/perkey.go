package expiry

import "time"

// PerKey resolves each key's TTL as: per-insert override if positive,
// else the configured default if positive, else no deadline at all
// (the key is untracked and lives forever). Deadlines are fixed, not
// sliding.
type PerKey[K comparable] struct {
	defaultTTL time.Duration // <= 0 means no default
	deadlines  map[K]int64   // key → absolute UnixNano deadline
	clock      Clock
}

// NewPerKey returns a per-key TTL policy. defaultTTL <= 0 means keys
// without an override are immortal.
func NewPerKey[K comparable](defaultTTL time.Duration) *PerKey[K] {
	return &PerKey[K]{
		defaultTTL: defaultTTL,
		deadlines:  make(map[K]int64),
		clock:      SystemClock(),
	}
}

// WithClock overrides the time source (tests). Returns the policy.
func (p *PerKey[K]) WithClock(c Clock) *PerKey[K] {
	if c != nil {
		p.clock = c
	}
	return p
}

// IsExpired reports whether key's deadline has passed.
func (p *PerKey[K]) IsExpired(key K) bool {
	at, ok := p.deadlines[key]
	if !ok {
		return false
	}
	return p.clock.NowUnixNano() > at
}

// OnInsert registers a deadline using the override→default→infinite
// resolution. Re-inserting with no effective TTL erases any previous
// deadline, so an update can make a key immortal again.
func (p *PerKey[K]) OnInsert(key K, ttl time.Duration) {
	if ttl <= 0 {
		ttl = p.defaultTTL
	}
	if ttl <= 0 {
		delete(p.deadlines, key)
		return
	}
	p.deadlines[key] = p.clock.NowUnixNano() + int64(ttl)
}

// OnAccess is a no-op: deadlines are fixed, not sliding.
func (p *PerKey[K]) OnAccess(K) {}

// OnRemove drops tracking for key.
func (p *PerKey[K]) OnRemove(key K) { delete(p.deadlines, key) }

// Clear drops all deadlines.
func (p *PerKey[K]) Clear() { clear(p.deadlines) }

// CollectExpired returns every key whose deadline has passed.
func (p *PerKey[K]) CollectExpired() []K {
	now := p.clock.NowUnixNano()
	var expired []K
	for k, at := range p.deadlines {
		if now > at {
			expired = append(expired, k)
		}
	}
	return expired
}

// TTL returns the remaining lifetime of key; (0, true) once expired.
func (p *PerKey[K]) TTL(key K) (time.Duration, bool) {
	at, ok := p.deadlines[key]
	if !ok {
		return 0, false
	}
	now := p.clock.NowUnixNano()
	if now > at {
		return 0, true
	}
	return time.Duration(at - now), true
}

// SetDeadline pins key to an absolute expiration time, tracking it if
// it was not tracked before.
func (p *PerKey[K]) SetDeadline(key K, at time.Time) {
	p.deadlines[key] = at.UnixNano()
}

// UpdateTTL restarts key's lifetime from now. Returns false if the key
// holds no deadline (use SetDeadline or OnInsert to start tracking).
func (p *PerKey[K]) UpdateTTL(key K, ttl time.Duration) bool {
	if _, ok := p.deadlines[key]; !ok {
		return false
	}
	p.deadlines[key] = p.clock.NowUnixNano() + int64(ttl)
	return true
}

// RemoveTTL stops tracking key, making it immortal. Returns false if
// the key held no deadline.
func (p *PerKey[K]) RemoveTTL(key K) bool {
	if _, ok := p.deadlines[key]; !ok {
		return false
	}
	delete(p.deadlines, key)
	return true
}

// DefaultTTL returns the configured fallback TTL (<= 0 means none).
func (p *PerKey[K]) DefaultTTL() time.Duration { return p.defaultTTL }

// Tracked returns the number of keys holding a deadline.
func (p *PerKey[K]) Tracked() int { return len(p.deadlines) }

var _ Policy[string] = (*PerKey[string])(nil)
