package vmem

import (
	"fmt"
	"sync"
)

// Default limits.
const (
	// DefaultBudgetBytes is the default video memory budget (256 MB).
	DefaultBudgetBytes = 256 << 20

	// DefaultMaxPerBucket is the default number of idle buffers kept per
	// size class.
	DefaultMaxPerBucket = 8
)

// Stats contains video memory usage statistics.
type Stats struct {
	// BudgetBytes is the total budget in bytes.
	BudgetBytes int

	// UsedBytes is the capacity of buffers currently handed out.
	UsedBytes int

	// IdleBytes is the capacity of freed buffers kept for reuse.
	IdleBytes int

	// Live is the number of buffers currently handed out.
	Live int

	// Allocs, Frees and Failures count Alloc and Free calls.
	Allocs   uint64
	Frees    uint64
	Failures uint64

	// Evictions is the total number of idle buffers dropped to make room.
	Evictions uint64
}

// Utilization is the fraction of the budget in use, idle buffers included.
func (s Stats) Utilization() float64 {
	if s.BudgetBytes <= 0 {
		return 0
	}
	return float64(s.UsedBytes+s.IdleBytes) / float64(s.BudgetBytes)
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("VMem[%.1f%% used, %d/%d KB, %d live, %d failures, %d evictions]",
		s.Utilization()*100,
		(s.UsedBytes+s.IdleBytes)/1024,
		s.BudgetBytes/1024,
		s.Live,
		s.Failures,
		s.Evictions)
}

// Config holds configuration for creating a Manager.
type Config struct {
	// BudgetBytes caps the memory handed out plus the memory kept idle.
	// Defaults to DefaultBudgetBytes if <= 0.
	BudgetBytes int

	// MaxPerBucket limits idle buffers per size class.
	// Defaults to DefaultMaxPerBucket if <= 0.
	MaxPerBucket int
}

// Manager hands out buffers from a Pool under a byte budget.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	pool   *Pool
	budget int
	used   int
	live   map[*byte]int

	allocs, frees, failures, evictions uint64

	closed bool
}

// New creates a Manager.
func New(cfg Config) *Manager {
	budget := cfg.BudgetBytes
	if budget <= 0 {
		budget = DefaultBudgetBytes
	}
	per := cfg.MaxPerBucket
	if per <= 0 {
		per = DefaultMaxPerBucket
	}
	return &Manager{
		pool:   NewPool(per),
		budget: budget,
		live:   make(map[*byte]int),
	}
}

// Alloc returns a zeroed buffer of length size, or nil when the manager is
// closed, size is not positive, or the buffer cannot fit in the budget even
// after every idle buffer has been evicted.
func (m *Manager) Alloc(size int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	class := SizeClass(size)
	if m.closed || class == 0 || m.used+class > m.budget {
		m.failures++
		return nil
	}
	buf := m.pool.take(size)
	if buf == nil {
		if over := m.used + m.pool.IdleBytes() + class - m.budget; over > 0 {
			m.evictions += uint64(m.pool.Evict(over)) // #nosec G115 -- count is non-negative
		}
		buf = make([]byte, size, class)
	}
	m.live[&buf[0]] = cap(buf)
	m.used += cap(buf)
	m.allocs++
	return buf
}

// Free returns a buffer obtained from Alloc. Buffers the manager does not
// own are ignored.
func (m *Manager) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	key := &buf[:1][0]

	m.mu.Lock()
	defer m.mu.Unlock()

	size, ok := m.live[key]
	if !ok {
		return
	}
	delete(m.live, key)
	m.used -= size
	m.frees++
	if !m.closed {
		m.pool.Put(buf)
	}
}

// Owns reports whether buf is a live allocation of this manager.
func (m *Manager) Owns(buf []byte) bool {
	if cap(buf) == 0 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[&buf[:1][0]]
	return ok
}

// SetBudget changes the budget, evicting idle buffers that no longer fit.
// Live buffers are never reclaimed.
func (m *Manager) SetBudget(bytes int) {
	if bytes <= 0 {
		bytes = DefaultBudgetBytes
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budget = bytes
	if over := m.used + m.pool.IdleBytes() - m.budget; over > 0 {
		m.evictions += uint64(m.pool.Evict(over)) // #nosec G115 -- count is non-negative
	}
}

// Stats returns current usage statistics.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		BudgetBytes: m.budget,
		UsedBytes:   m.used,
		IdleBytes:   m.pool.IdleBytes(),
		Live:        len(m.live),
		Allocs:      m.allocs,
		Frees:       m.frees,
		Failures:    m.failures,
		Evictions:   m.evictions,
	}
}

// Close drops idle buffers and makes every later Alloc fail. Buffers still
// live may be freed after Close.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.pool.Reset()
	m.closed = true
}
