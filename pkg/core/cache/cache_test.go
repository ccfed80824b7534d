package cache

import (
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string](DefaultConfig())

	_, ok := c.Get("a")
	be.True(t, !ok)

	c.Set("a", "one")
	v, ok := c.Get("a")
	be.True(t, ok)
	be.Equal(t, v, "one")

	c.Set("a", "uno")
	v, _ = c.Get("a")
	be.Equal(t, v, "uno")
	be.Equal(t, c.Len(), 1)

	hits, misses, rate := c.Stats()
	be.Equal(t, hits, int64(2))
	be.Equal(t, misses, int64(1))
	be.True(t, rate > 66 && rate < 67)
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[int](Config{})
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	be.True(t, !ok)
	be.Equal(t, c.Len(), 1)

	c.Clear()
	be.Equal(t, c.Len(), 0)
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)

	// Overwriting an existing key never evicts
	c.Set("b", 3)
	be.Equal(t, c.Len(), 2)

	c.Set("c", 4)
	be.Equal(t, c.Len(), 2)
	_, ok := c.Get("a")
	be.True(t, !ok)
	_, ok = c.Get("c")
	be.True(t, ok)
}

func TestCache_TTL(t *testing.T) {
	c := New[int](Config{TTL: 20 * time.Millisecond})
	c.Set("a", 1)

	_, ok := c.Get("a")
	be.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get("a")
	be.True(t, !ok)
	be.Equal(t, c.Len(), 0)
}

func TestKey(t *testing.T) {
	be.Equal(t, Key([]byte("a"), []byte("b")), Key([]byte("a"), []byte("b")))
	be.True(t, Key([]byte("ab"), []byte("c")) != Key([]byte("a"), []byte("bc")))
	be.True(t, Key([]byte("a")) != Key([]byte("a"), nil))
	be.Equal(t, len(Key()), 64)
}
