package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/tobantal/cachekit/codec"
)

// Snapshot persists the full entry set to a single file. State is kept
// in memory and rewritten wholesale: either on every mutation
// (autoFlush) or when Flush is called. Writes go to a temp file first
// and are renamed into place, so a crash never leaves a half-written
// snapshot behind.
//
// Safe for concurrent use; one Snapshot may serve several caches (for
// example behind a shared async listener).
type Snapshot[K comparable, V any] struct {
	path      string
	codec     codec.Codec[K, V]
	autoFlush bool

	mu    sync.Mutex
	state map[K]V
	dirty bool
}

// NewSnapshot returns a snapshot store writing to path. Panics on a
// nil codec. autoFlush rewrites the file on every mutation — simple
// and durable, but O(n) per write; leave it off and call Flush for
// anything beyond small caches.
func NewSnapshot[K comparable, V any](path string, c codec.Codec[K, V], autoFlush bool) *Snapshot[K, V] {
	if c == nil {
		panic("persist: codec must not be nil")
	}
	return &Snapshot[K, V]{
		path:      path,
		codec:     c,
		autoFlush: autoFlush,
		state:     make(map[K]V),
	}
}

// Load reads the snapshot file and adopts it as the current state. A
// missing file is an empty state, not an error.
func (s *Snapshot[K, V]) Load() ([]codec.Entry[K, V], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	entries, err := s.codec.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("persist: decode %s: %w", s.path, err)
	}

	clear(s.state)
	for _, e := range entries {
		s.state[e.Key] = e.Value
	}
	s.dirty = false
	return entries, nil
}

// SaveAll replaces the state with entries and writes it out.
func (s *Snapshot[K, V]) SaveAll(entries []codec.Entry[K, V]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.state)
	for _, e := range entries {
		s.state[e.Key] = e.Value
	}
	if err := s.write(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Put upserts one pair.
func (s *Snapshot[K, V]) Put(key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[key] = value
	return s.mutated()
}

// Delete removes one key.
func (s *Snapshot[K, V]) Delete(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state[key]; !ok {
		return nil
	}
	delete(s.state, key)
	return s.mutated()
}

// Clear removes everything.
func (s *Snapshot[K, V]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.state)
	return s.mutated()
}

// Flush writes the state out if anything changed since the last write.
func (s *Snapshot[K, V]) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.write(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Exists reports whether the snapshot file is present.
func (s *Snapshot[K, V]) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Dirty reports whether unflushed changes are pending.
func (s *Snapshot[K, V]) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Path returns the snapshot file path.
func (s *Snapshot[K, V]) Path() string { return s.path }

// mutated marks the state dirty and honours autoFlush. Caller holds mu.
func (s *Snapshot[K, V]) mutated() error {
	s.dirty = true
	if !s.autoFlush {
		return nil
	}
	if err := s.write(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// write encodes the state and atomically replaces the snapshot file.
// Caller holds mu.
func (s *Snapshot[K, V]) write() error {
	entries := make([]codec.Entry[K, V], 0, len(s.state))
	for k, v := range s.state {
		entries = append(entries, codec.Entry[K, V]{Key: k, Value: v})
	}
	data, err := s.codec.EncodeAll(entries)
	if err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("persist: rename %s: %w", tmp, err)
	}
	return nil
}

var _ Store[string, int] = (*Snapshot[string, int])(nil)
