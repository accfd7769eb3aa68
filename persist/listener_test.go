package persist

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobantal/cachekit/cache"
	"github.com/tobantal/cachekit/codec"
)

// The listener keeps the store in step with the cache across the whole
// mutation surface, so a restart can warm the cache back up.
func TestListener_MirrorsCacheIntoStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.snap")
	store := NewSnapshot(path, codec.NewBinary[string, int](), false)

	c := cache.New[string, int](cache.Options[string, int]{Capacity: 2})
	c.AddListener(NewListener[string, int](store, nil))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // update
	c.Put("c", 3)  // evicts b (LRU after a was updated)
	c.Remove("c")
	require.NoError(t, store.Flush())

	reload := NewSnapshot(path, codec.NewBinary[string, int](), false)
	entries, err := reload.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, codec.Entry[string, int]{Key: "a", Value: 10}, entries[0])
}

func TestListener_ClearWipesStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.snap")
	store := NewSnapshot(path, codec.NewBinary[string, int](), true)

	c := cache.New[string, int](cache.Options[string, int]{Capacity: 4})
	c.AddListener(NewListener[string, int](store, nil))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	reload := NewSnapshot(path, codec.NewBinary[string, int](), false)
	entries, err := reload.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Loading a snapshot back into a fresh cache restores the entries.
func TestListener_WarmRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.snap")
	store := NewSnapshot(path, codec.NewBinary[string, int](), true)

	c := cache.New[string, int](cache.Options[string, int]{Capacity: 8})
	c.AddListener(NewListener[string, int](store, nil))
	c.Put("a", 1)
	c.Put("b", 2)

	// "Restart": new store, new cache, replay the snapshot.
	store2 := NewSnapshot(path, codec.NewBinary[string, int](), true)
	entries, err := store2.Load()
	require.NoError(t, err)

	c2 := cache.New[string, int](cache.Options[string, int]{Capacity: 8})
	for _, e := range entries {
		c2.Put(e.Key, e.Value)
	}

	v, ok := c2.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c2.Len())
}

type failingStore[K comparable, V any] struct {
	err error
}

func (f failingStore[K, V]) Load() ([]codec.Entry[K, V], error) { return nil, f.err }
func (f failingStore[K, V]) SaveAll([]codec.Entry[K, V]) error  { return f.err }
func (f failingStore[K, V]) Put(K, V) error                     { return f.err }
func (f failingStore[K, V]) Delete(K) error                     { return f.err }
func (f failingStore[K, V]) Clear() error                       { return f.err }
func (f failingStore[K, V]) Flush() error                       { return f.err }
func (f failingStore[K, V]) Exists() bool                       { return false }

// Store failures are logged, never surfaced to the cache caller.
func TestListener_SwallowsStoreErrors(t *testing.T) {
	t.Parallel()

	store := failingStore[string, int]{err: errors.New("disk on fire")}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := cache.New[string, int](cache.Options[string, int]{Capacity: 2})
	c.AddListener(NewListener[string, int](store, log))

	c.Put("a", 1) // must not panic or error
	c.Remove("a")
	c.Clear()

	v, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestListener_NilStorePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewListener[string, int](nil, nil)
	})
}
