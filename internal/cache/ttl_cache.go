package cache

import (
	"sync"
	"time"
)

// Cache is a minimal TTL cache interface for hot-path lookups.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values in-memory with per-entry TTLs.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
}

// NewTTLCache constructs an empty TTLCache.
func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]entry[V])}
}

// Get returns a cached value if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		c.Delete(key)
		return zero, false
	}
	return item.value, true
}

// Set stores a value; ttl <= 0 means no expiry.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// NoopCache always misses and ignores writes.
type NoopCache[K comparable, V any] struct{}

func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}

func (NoopCache[K, V]) Delete(key K) {}
