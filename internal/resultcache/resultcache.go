// Package resultcache contains the bounded decision cache that front-runs the
// match engine on repeat lookups.  The eviction policy is deliberately blunt:
// once a cache reaches its capacity it is cleared wholesale.  A full clear is
// rare relative to lookups and keeps the write path O(1) amortized, which an
// LRU scan would not.
package resultcache

import "sync"

// DefaultCapacity is the entry limit used when no capacity is configured.
const DefaultCapacity = 1_000

// Cache is a bounded key-to-boolean mapping.  The zero value is not ready for
// use; call [New].  All methods are safe for concurrent use and are no-ops on
// a nil receiver.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]bool
	capacity int
}

// New returns a new cache holding at most capacity entries.  If capacity is
// not positive, [DefaultCapacity] is used.
func New(capacity int) (c *Cache) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Cache{
		entries:  map[string]bool{},
		capacity: capacity,
	}
}

// Get returns the cached decision for key, if any.
func (c *Cache) Get(key string) (v, ok bool) {
	if c == nil {
		return false, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok = c.entries[key]

	return v, ok
}

// Set stores the decision for key.  When the cache is at capacity, it is
// cleared wholesale before the insert.
func (c *Cache) Set(key string, v bool) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		clear(c.entries)
	}

	c.entries[key] = v
}

// Clear drops all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *Cache) Len() (n int) {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
