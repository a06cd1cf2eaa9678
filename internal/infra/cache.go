package infra

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data    any
	expires time.Time
}

// TTLCache is a small in-process cache with a fixed TTL per entry. It backs
// the order and tracking lookups so a page refresh does not re-hit the
// upstream API.
type TTLCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.data, true
}

func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: value, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
