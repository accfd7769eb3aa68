// Package lfu implements the Least-Frequently-Used eviction policy with
// LRU tie-breaking inside each frequency group.
package lfu

import (
	"container/list"

	"github.com/tobantal/cachekit/policy"
)

// LFU tracks a use counter per key and groups keys by frequency. Each
// group is ordered most-recently-used first, so the victim is the back
// of the lowest-frequency group (classic LFU-LRU).
//
// minFreq caches the lowest frequency in use and is maintained lazily:
// OnRemove may leave it pointing at an emptied group, and SelectVictim
// revalidates it on demand by scanning the remaining groups. That scan
// is bounded by the number of distinct frequencies, not the number of
// keys, and keeps the common-case updates at O(1) amortized. Keeping
// minFreq exact on every removal would turn each removal into that
// scan, so the staleness is intentional.
type LFU[K comparable] struct {
	freq    map[K]uint32            // key → use count
	groups  map[uint32]*list.List   // use count → keys, front = MRU
	index   map[K]*list.Element     // key → position in its group
	minFreq uint32                  // 0 when empty
}

// New returns an empty LFU policy.
func New[K comparable]() *LFU[K] {
	return &LFU[K]{
		freq:   make(map[K]uint32),
		groups: make(map[uint32]*list.List),
		index:  make(map[K]*list.Element),
	}
}

// OnAccess increments the key's frequency and moves it to the MRU slot
// of the next frequency group. Unknown keys are ignored.
func (p *LFU[K]) OnAccess(key K) {
	old, ok := p.freq[key]
	if !ok {
		return
	}
	next := old + 1

	p.detach(key, old)
	// The key just left the minimum group; if the group emptied, the
	// new minimum is exactly old+1.
	if p.groups[old] == nil && p.minFreq == old {
		p.minFreq = next
	}

	p.freq[key] = next
	p.attach(key, next)
}

// OnInsert starts tracking key at frequency 1, which is by definition
// the new minimum.
func (p *LFU[K]) OnInsert(key K) {
	p.freq[key] = 1
	p.attach(key, 1)
	p.minFreq = 1
}

// OnRemove stops tracking key. minFreq is not repaired here; the next
// SelectVictim revalidates it.
func (p *LFU[K]) OnRemove(key K) {
	f, ok := p.freq[key]
	if !ok {
		return
	}
	p.detach(key, f)
	delete(p.freq, key)
}

// SelectVictim returns the least-recently-used key within the lowest
// frequency group, without removing it.
func (p *LFU[K]) SelectVictim() K {
	if p.Empty() {
		panic("lfu: SelectVictim on empty policy")
	}
	p.revalidateMin()
	return p.groups[p.minFreq].Back().Value.(K)
}

// Empty reports whether no keys are tracked.
func (p *LFU[K]) Empty() bool { return len(p.freq) == 0 }

// Len returns the number of tracked keys.
func (p *LFU[K]) Len() int { return len(p.freq) }

// Clear drops all tracked metadata.
func (p *LFU[K]) Clear() {
	clear(p.freq)
	clear(p.groups)
	clear(p.index)
	p.minFreq = 0
}

// Frequency returns the tracked use count of key, or 0 if untracked.
// Exposed for tests and diagnostics.
func (p *LFU[K]) Frequency(key K) uint32 { return p.freq[key] }

// MinFrequency returns the cached minimum frequency. It may be stale
// after removals until the next SelectVictim. Exposed for tests.
func (p *LFU[K]) MinFrequency() uint32 { return p.minFreq }

// attach puts key at the MRU slot of the given frequency group.
func (p *LFU[K]) attach(key K, f uint32) {
	g := p.groups[f]
	if g == nil {
		g = list.New()
		p.groups[f] = g
	}
	p.index[key] = g.PushFront(key)
}

// detach removes key from the given frequency group, dropping the
// group when it empties.
func (p *LFU[K]) detach(key K, f uint32) {
	el, ok := p.index[key]
	if !ok {
		return
	}
	g := p.groups[f]
	if g == nil {
		return
	}
	g.Remove(el)
	delete(p.index, key)
	if g.Len() == 0 {
		delete(p.groups, f)
	}
}

// revalidateMin repairs minFreq after removals emptied its group.
// O(distinct frequencies) worst case; called only from SelectVictim on
// a non-empty policy.
func (p *LFU[K]) revalidateMin() {
	if g, ok := p.groups[p.minFreq]; ok && g.Len() > 0 {
		return
	}
	first := true
	for f := range p.groups {
		if first || f < p.minFreq {
			p.minFreq = f
			first = false
		}
	}
}

var _ policy.Eviction[string] = (*LFU[string])(nil)
