package memo

import (
	"errors"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the default capacity callers such as the extractor pass to New.
const DefaultSize = 128

// ErrInvalidSize is returned by New for sizes that cannot back a cache.
var ErrInvalidSize = errors.New("memo: size must be positive")

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

// Cache maps keys to the most recently stored value for that key. Once full,
// storing a new key evicts the least recently used one. A Get hit counts as a
// use. There is no expiry: an entry stays until evicted or purged.
type Cache[K comparable, V any] struct {
	entries  *lru.Cache[K, V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most size entries.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache[K, V]{capacity: size}
	entries, err := lru.NewWithEvict[K, V](size, func(K, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

// Get returns the value stored for key and marks it as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	value, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value, ok
}

// Add stores value under key, replacing any previous value, and reports
// whether an older entry was evicted to make room.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool) {
	return c.entries.Add(key, value)
}

// Contains reports whether key is cached without touching recency or stats.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

// Peek returns the value for key without touching recency or stats.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.entries.Peek(key)
}

// Remove drops key from the cache. Removal does not count as an eviction.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.entries.Remove(key)
}

// Keys returns the cached keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	return c.entries.Keys()
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}

// Purge empties the cache and resets the statistics.
func (c *Cache[K, V]) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.entries.Len(),
		Capacity:  c.capacity,
	}
}
