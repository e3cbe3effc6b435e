package debugdraw

import (
	"time"
)

// registry owns every live line and instance record. All methods expect the
// owning Overlay's lock to be held; the pools carry their own locks.
type registry struct {
	lines     []*LinePrimitive
	instances [shapeKindCount][]*InstancePrimitive

	linePool      *Pool[*LinePrimitive]
	instancePools [shapeKindCount]*Pool[*InstancePrimitive]
}

func newRegistry() *registry {
	r := &registry{
		linePool: NewPool(newLinePrimitive, resetHeader[*LinePrimitive]),
	}
	for i := range r.instancePools {
		r.instancePools[i] = NewPool(newInstancePrimitive(ShapeKind(i)), resetHeader[*InstancePrimitive])
	}
	return r
}

func (r *registry) addLine(l *LinePrimitive) {
	r.lines = append(r.lines, l)
}

func (r *registry) addInstance(inst *InstancePrimitive) {
	r.instances[inst.Shape] = append(r.instances[inst.Shape], inst)
}

// pruneSet compacts set in place, returning expired records to pool.
func pruneSet[T headered](set []T, pool *Pool[T], now time.Time, enabled bool, counts *pruneCounts) ([]T, int) {
	kept := set[:0]
	removed := 0
	for _, item := range set {
		if h := item.header(); h.expired(now, enabled) {
			counts.record(h)
			pool.Put(item)
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// drop references held by the tail
	var zero T
	for i := len(kept); i < len(set); i++ {
		set[i] = zero
	}
	return kept, removed
}

func clearSet[T any](set []T, pool *Pool[T]) []T {
	var zero T
	for i, item := range set {
		pool.Put(item)
		set[i] = zero
	}
	return set[:0]
}

// prune removes expired records and reports how many went back to the pools.
// counts may be nil.
func (r *registry) prune(now time.Time, enabled bool, counts *pruneCounts) int {
	var removed, n int
	r.lines, n = pruneSet(r.lines, r.linePool, now, enabled, counts)
	removed += n
	for i := range r.instances {
		r.instances[i], n = pruneSet(r.instances[i], r.instancePools[i], now, enabled, counts)
		removed += n
	}
	return removed
}

func (r *registry) clearLines() {
	r.lines = clearSet(r.lines, r.linePool)
}

func (r *registry) clearInstances() {
	for i := range r.instances {
		r.instances[i] = clearSet(r.instances[i], r.instancePools[i])
	}
}

func (r *registry) clear() {
	r.clearLines()
	r.clearInstances()
}

func (r *registry) liveInstances() int {
	n := 0
	for _, set := range r.instances {
		n += len(set)
	}
	return n
}

func (r *registry) poolIdle() int {
	n := r.linePool.Idle()
	for _, p := range r.instancePools {
		n += p.Idle()
	}
	return n
}

func (r *registry) poolCreated() int {
	n := r.linePool.Created()
	for _, p := range r.instancePools {
		n += p.Created()
	}
	return n
}
