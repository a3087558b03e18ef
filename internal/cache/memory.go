package cache

import (
	"sync"
	"time"
)

// DefaultMemoryTTL bounds how long the in-process tier serves a collection
// without consulting the durable store. It is deliberately much shorter than
// the store's freshness window; the two are independent knobs.
const DefaultMemoryTTL = 30 * time.Second

type memoryEntry struct {
	value     any
	expiresAt time.Time
}

// memoryCache is the first read tier: a TTL-expiring map of collection name
// to the decoded record slice.
type memoryCache struct {
	ttl       time.Duration
	overrides map[string]time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry

	now func() time.Time
}

func newMemoryCache(ttl time.Duration, overrides map[string]time.Duration) *memoryCache {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	return &memoryCache{
		ttl:       ttl,
		overrides: overrides,
		entries:   make(map[string]memoryEntry),
		now:       time.Now,
	}
}

func (c *memoryCache) ttlFor(name string) time.Duration {
	if ttl, ok := c.overrides[name]; ok && ttl > 0 {
		return ttl
	}
	return c.ttl
}

func (c *memoryCache) get(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, name)
		return nil, false
	}
	return entry.value, true
}

func (c *memoryCache) set(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = memoryEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttlFor(name)),
	}
}

func (c *memoryCache) delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

func (c *memoryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
}
