// Package lru implements the Least-Recently-Used eviction policy.
package lru

import (
	"container/list"

	"github.com/tobantal/cachekit/policy"
)

// LRU keeps keys in use order: list front is the most recently used,
// back is the victim. A key→element index makes every operation O(1);
// moves relocate list nodes in place without reallocation.
type LRU[K comparable] struct {
	order *list.List               // element values are K
	index map[K]*list.Element
}

// New returns an empty LRU policy.
func New[K comparable]() *LRU[K] {
	return &LRU[K]{
		order: list.New(),
		index: make(map[K]*list.Element),
	}
}

// OnAccess promotes key to most-recently-used. Unknown keys are ignored.
func (p *LRU[K]) OnAccess(key K) {
	if el, ok := p.index[key]; ok {
		p.order.MoveToFront(el)
	}
}

// OnInsert starts tracking key as most-recently-used.
func (p *LRU[K]) OnInsert(key K) {
	p.index[key] = p.order.PushFront(key)
}

// OnRemove stops tracking key. Unknown keys are ignored.
func (p *LRU[K]) OnRemove(key K) {
	if el, ok := p.index[key]; ok {
		p.order.Remove(el)
		delete(p.index, key)
	}
}

// SelectVictim returns the least-recently-used key without removing it.
func (p *LRU[K]) SelectVictim() K {
	back := p.order.Back()
	if back == nil {
		panic("lru: SelectVictim on empty policy")
	}
	return back.Value.(K)
}

// Empty reports whether no keys are tracked.
func (p *LRU[K]) Empty() bool { return p.order.Len() == 0 }

// Len returns the number of tracked keys.
func (p *LRU[K]) Len() int { return p.order.Len() }

// Clear drops all tracked metadata.
func (p *LRU[K]) Clear() {
	p.order.Init()
	clear(p.index)
}

var _ policy.Eviction[string] = (*LRU[string])(nil)
