package cache

import "time"

// Cache is a keyed store of V values with per-entry expiry.
type Cache[V any] interface {
	// Get returns the value stored under key and whether it was found.
	Get(key string) (V, bool)

	// Set stores value under key for duration. Zero means the cache default.
	Set(key string, value V, duration time.Duration)

	Delete(key string)

	// Flush removes all items.
	Flush()

	// Len reports the number of stored items, expired ones included until
	// the next cleanup.
	Len() int
}
