// Package vmem provides the video memory allocators behind image creation.
//
// Pool recycles buffers in power-of-two size classes. Manager enforces a
// byte budget on top of a Pool and evicts the least recently returned idle
// buffers when a new allocation would not fit. Both satisfy the
// Alloc/Free collaborator contract of pixrot.Allocator: Alloc returns nil on
// failure and never panics.
package vmem

import (
	"container/list"
	"math/bits"
	"sync"
)

// MinClass is the smallest size class in bytes.
const MinClass = 64

// SizeClass returns the capacity a buffer of size bytes is allocated with.
// It returns 0 for non-positive sizes.
func SizeClass(size int) int {
	if size <= 0 {
		return 0
	}
	if size <= MinClass {
		return MinClass
	}
	return 1 << bits.Len(uint(size-1))
}

// Pool is a thread-safe pool of reusable byte buffers.
//
// Idle buffers are grouped by size class and tracked in one LRU list so
// eviction drops the buffers that have been idle the longest.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][]*list.Element
	lru     *list.List // front = most recently returned
	idle    int
	maxSize int // max buffers per bucket
}

// NewPool creates a pool keeping at most maxPerBucket idle buffers per size
// class. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][]*list.Element),
		lru:     list.New(),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of length size. Reused buffers come from the
// matching size class; otherwise a new one is allocated.
func (p *Pool) Get(size int) []byte {
	if buf := p.take(size); buf != nil {
		return buf
	}
	class := SizeClass(size)
	if class == 0 {
		return nil
	}
	return make([]byte, size, class)
}

// take pops an idle buffer of the size class of size, or returns nil.
func (p *Pool) take(size int) []byte {
	class := SizeClass(size)
	if class == 0 {
		return nil
	}

	p.mu.Lock()
	bucket := p.buckets[class]
	n := len(bucket)
	if n == 0 {
		p.mu.Unlock()
		return nil
	}
	e := bucket[n-1]
	p.buckets[class] = bucket[:n-1]
	p.lru.Remove(e)
	p.idle -= class
	p.mu.Unlock()

	buf, _ := e.Value.([]byte)
	buf = buf[:size]
	clear(buf)
	return buf
}

// Put returns a buffer for reuse. Buffers whose capacity is not a size
// class, and buffers arriving at a full bucket, are dropped.
func (p *Pool) Put(buf []byte) {
	class := cap(buf)
	if class == 0 || SizeClass(class) != class {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	e := p.lru.PushFront(buf[:class])
	p.buckets[class] = append(bucket, e)
	p.idle += class
}

// Alloc is Get under the allocator contract.
func (p *Pool) Alloc(size int) []byte { return p.Get(size) }

// Free is Put under the allocator contract.
func (p *Pool) Free(buf []byte) { p.Put(buf) }

// IdleBytes returns the capacity held by idle buffers.
func (p *Pool) IdleBytes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idle
}

// Evict drops least recently returned buffers until at least n bytes are
// released or the pool is empty. It returns the number of buffers dropped.
func (p *Pool) Evict(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	dropped, freed := 0, 0
	for freed < n && p.lru.Len() > 0 {
		e := p.lru.Back()
		buf, _ := e.Value.([]byte)
		class := cap(buf)
		p.lru.Remove(e)
		p.removeFromBucketLocked(class, e)
		p.idle -= class
		freed += class
		dropped++
	}
	return dropped
}

// Reset drops every idle buffer.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets = make(map[int][]*list.Element)
	p.lru.Init()
	p.idle = 0
}

func (p *Pool) removeFromBucketLocked(class int, e *list.Element) {
	bucket := p.buckets[class]
	for i, b := range bucket {
		if b == e {
			p.buckets[class] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}
