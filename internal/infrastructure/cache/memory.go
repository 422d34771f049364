package cache

import (
	"time"

	"catalog-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache[V any] struct {
	store *gocache.Cache
}

// NewMemoryCache returns an in-process cache.
// defaultExpiration: TTL for entries set with a zero duration
// cleanupInterval: how often expired entries are purged
func NewMemoryCache[V any](defaultExpiration, cleanupInterval time.Duration) cache.Cache[V] {
	return &memoryCache[V]{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache[V]) Get(key string) (V, bool) {
	var zero V
	val, found := c.store.Get(key)
	if !found {
		return zero, false
	}
	v, ok := val.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *memoryCache[V]) Set(key string, value V, duration time.Duration) {
	if duration == 0 {
		duration = gocache.DefaultExpiration
	}
	c.store.Set(key, value, duration)
}

func (c *memoryCache[V]) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache[V]) Flush() {
	c.store.Flush()
}

func (c *memoryCache[V]) Len() int {
	return c.store.ItemCount()
}
