package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Name string
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache[item](time.Minute, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("a", item{Name: "Lamp"}, 0)
	got, found := c.Get("a")
	assert.True(t, found)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, 1, c.Len())

	c.Delete("a")
	_, found = c.Get("a")
	assert.False(t, found)

	c.Set("b", item{}, time.Minute)
	c.Set("c", item{}, time.Minute)
	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache[item](time.Minute, time.Minute)
	c.Set("short", item{Name: "gone"}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}
