package tinydi

import (
	"sync"
)

// cacheEntry is a materialized unnamed binding. multi entries hold []any.
type cacheEntry struct {
	value any
	multi bool
}

// instanceCache provides thread-safe caching for materialized instances
type instanceCache struct {
	instances map[any]cacheEntry
	named     map[any]map[string]any
	mu        sync.RWMutex
}

// newInstanceCache creates a new instance cache
func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[any]cacheEntry),
		named:     make(map[any]map[string]any),
	}
}

// get retrieves an unnamed instance from the cache
func (c *instanceCache) get(id any) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.instances[id]
	return entry, ok
}

// store caches entry unless another caller got there first, and returns the
// entry that ended up cached.
func (c *instanceCache) store(id any, entry cacheEntry) cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.instances[id]; ok {
		return existing
	}
	c.instances[id] = entry
	return entry
}

// getNamed retrieves a named instance from the cache
func (c *instanceCache) getNamed(id any, name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	instance, ok := c.named[id][name]
	return instance, ok
}

// storeNamed is store for named slots.
func (c *instanceCache) storeNamed(id any, name string, instance any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.named[id]
	if !ok {
		slots = make(map[string]any)
		c.named[id] = slots
	}
	if existing, ok := slots[name]; ok {
		return existing
	}
	slots[name] = instance
	return instance
}

// clear removes all instances from the cache
func (c *instanceCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[any]cacheEntry)
	c.named = make(map[any]map[string]any)
}

// len returns the number of cached slots
func (c *instanceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.instances)
	for _, slots := range c.named {
		n += len(slots)
	}
	return n
}
