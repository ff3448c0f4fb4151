// Package pool provides the fixed-capacity object pools the matching
// engine allocates its order and price-level records from, eliminating
// allocator traffic on the hot path. Idiomatic-Go counterpart of
// include/ObjectPool.h in the C++ reference this engine was distilled
// from: that pool overlays a live T and a free-list link in one
// union-typed slot; Go has no safe way to do that without unsafe, so
// this pool instead threads the freelist as a plain []*T stack over a
// separately allocated slab — same O(1) acquire/release and LIFO
// cache-warmth property, no unsafe, no allocation after New.
package pool

import "limitbook/bookerr"

// Pool holds a contiguous slab of T and a LIFO freelist over it.
// Capacity is fixed at construction; Pool never grows.
type Pool[T any] struct {
	slab []T
	free []*T
}

// New allocates a pool of the given fixed capacity.
func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{
		slab: make([]T, capacity),
		free: make([]*T, 0, capacity),
	}
	p.Reset()
	return p
}

// Reset zeroes every slot and re-links it onto the freelist, discarding
// any record currently on loan. Used between benchmark iterations, not
// on the matching hot path.
func (p *Pool[T]) Reset() {
	var zero T
	p.free = p.free[:0]
	for i := range p.slab {
		p.slab[i] = zero
		p.free = append(p.free, &p.slab[i])
	}
}

// Acquire pops a zero-valued *T off the freelist, or returns
// bookerr.ErrPoolExhausted if none remain. The caller is responsible
// for initializing every field it cares about — Acquire does not run
// a constructor.
func (p *Pool[T]) Acquire() (*T, error) {
	n := len(p.free)
	if n == 0 {
		var zero *T
		return zero, bookerr.ErrPoolExhausted
	}
	t := p.free[n-1]
	p.free = p.free[:n-1]
	return t, nil
}

// Release zeroes *t in place and pushes it back onto the freelist.
// The caller must not touch t again afterwards.
func (p *Pool[T]) Release(t *T) {
	var zero T
	*t = zero
	p.free = append(p.free, t)
}

// Len reports the number of slots currently available to Acquire.
func (p *Pool[T]) Len() int { return len(p.free) }

// Cap reports the pool's fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.slab) }
