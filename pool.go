package debugdraw

import "sync"

// Pool caches released records for reuse. It never evicts, so it settles at the
// peak number of simultaneously live records. Safe for concurrent use.
type Pool[T any] struct {
	mu      sync.Mutex
	idle    []T
	created int
	newFn   func() T
	reset   func(T)
}

func NewPool[T any](newFn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{newFn: newFn, reset: reset}
}

// Get returns an idle record or constructs a new one.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.idle); n > 0 {
		item := p.idle[n-1]
		var zero T
		p.idle[n-1] = zero
		p.idle = p.idle[:n-1]
		return item
	}
	p.created++
	return p.newFn()
}

// Put resets the record and makes it available again.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		p.reset(item)
	}
	p.mu.Lock()
	p.idle = append(p.idle, item)
	p.mu.Unlock()
}

func (p *Pool[T]) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Created is the number of records ever constructed by this pool.
func (p *Pool[T]) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
