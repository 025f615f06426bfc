package template

import (
	"sync"

	"github.com/wecco-dev/wecco/pkg/dom"
)

// Cache maps render targets to the template instance last applied to them.
//
// Entries are owned by their target: they are replaced when a different
// template lands on the target and removed by Invalidate, which component
// hosts reach through Renderer.Release when they are detached.
type Cache struct {
	mu      sync.Mutex
	entries map[*dom.Node]*Instance
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[*dom.Node]*Instance)}
}

// Lookup returns the instance cached for target.
func (c *Cache) Lookup(target *dom.Node) (*Instance, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst, ok := c.entries[target]
	return inst, ok
}

// Store associates inst with target, replacing any previous entry.
func (c *Cache) Store(target *dom.Node, inst *Instance) {
	c.mu.Lock()
	c.entries[target] = inst
	c.mu.Unlock()
}

// Invalidate removes the entry for target and reports whether one existed.
func (c *Cache) Invalidate(target *dom.Node) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[target]
	delete(c.entries, target)
	return ok
}

// Len returns the number of cached targets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
