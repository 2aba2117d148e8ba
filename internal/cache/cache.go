// Package cache provides a small bounded LRU cache for derived tables.
//
// Tables such as gamma curves are expensive to build and cheap to copy, so
// callers keep one cache per table kind and look entries up by parameter.
package cache

import "sync"

// DefaultCapacity bounds a cache created with a non-positive capacity.
const DefaultCapacity = 32

// LRU is a thread-safe cache holding at most Capacity entries. When full,
// inserting a new key evicts the least recently used one.
//
// LRU must not be copied after first use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*node[K, V]
	order    list[K, V]
	capacity int

	hits, misses uint64
}

// New creates a cache holding up to capacity entries.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		entries:  make(map[K]*node[K, V], capacity),
		capacity: capacity,
	}
}

// Get returns the value stored for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// GetOrCreate returns the value for key, building it with create on a miss.
// create runs under the cache lock, so a key is built at most once.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		return n.value
	}
	c.misses++
	v := create()
	c.insertLocked(key, v)
	return v
}

// Set stores value for key.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	c.insertLocked(key, value)
}

func (c *LRU[K, V]) insertLocked(key K, value V) {
	if len(c.entries) >= c.capacity {
		if old := c.order.tail; old != nil {
			c.order.unlink(old)
			delete(c.entries, old.key)
		}
	}
	n := &node[K, V]{key: key, value: value}
	c.order.pushFront(n)
	c.entries[key] = n
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every entry and resets the counters.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*node[K, V], c.capacity)
	c.order = list[K, V]{}
	c.hits, c.misses = 0, 0
}
