package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := New[[]string](time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []string{"a"})
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int](time.Second)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(500 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[int](0)
	assert.Equal(t, 5*time.Second, c.ttl)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}
