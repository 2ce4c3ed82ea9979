package hal

import "sync"

// BudgetPool is a MemoryPool that tracks a byte budget.
// A negative budget never runs out.
type BudgetPool struct {
	name string

	mu     sync.Mutex
	budget int
	used   int
}

// NewBudgetPool returns a pool holding budget bytes.
func NewBudgetPool(name string, budget int) *BudgetPool {
	return &BudgetPool{name: name, budget: budget}
}

func (p *BudgetPool) Name() string { return p.name }

func (p *BudgetPool) Reserve(bytes int) bool {
	if bytes < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.budget >= 0 && p.used+bytes > p.budget {
		return false
	}
	p.used += bytes
	return true
}

func (p *BudgetPool) Release(bytes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used -= bytes
	if p.used < 0 {
		p.used = 0
	}
}

// Used reports the reserved byte count.
func (p *BudgetPool) Used() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used
}

// Pools is a Memory made of two pools.
type Pools struct {
	Main  MemoryPool
	Inner MemoryPool
}

func (m Pools) Primary() MemoryPool   { return m.Main }
func (m Pools) Secondary() MemoryPool { return m.Inner }
