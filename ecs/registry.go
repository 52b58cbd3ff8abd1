package ecs

import (
	"cmp"
	"slices"

	"github.com/milk9111/platformer/render"
)

// Object is one live entity. C is the per-tick context handed to Update.
// Variants with nothing to do in Update or Draw implement them as no-ops.
type Object[C any] interface {
	Update(dt float64, ctx C)
	Draw(r render.Renderer)
	// Depth orders the draw pass; lower values are painted first.
	Depth() float64
	// Expired reports that the object should be dropped at the next Compact.
	Expired() bool
}

type slot[C any] struct {
	entity  Entity
	obj     Object[C]
	removed bool
}

// Registry owns entities in insertion order. Removal during iteration is
// deferred: the slot is hidden at once and dropped by the next Compact, so a
// pass never skips or revisits an element.
type Registry[C any] struct {
	store     entityStore
	slots     []slot[C]
	index     []int // entity id -> slot index, -1 when absent
	iterating int
}

func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{}
}

// Add appends obj and returns its handle. A nil object is ignored and the
// zero Entity returned.
func (r *Registry[C]) Add(obj Object[C]) Entity {
	if obj == nil {
		return 0
	}
	e := r.store.create()
	id := int(e.id())
	for len(r.index) < id {
		r.index = append(r.index, -1)
	}
	r.slots = append(r.slots, slot[C]{entity: e, obj: obj})
	r.index[id-1] = len(r.slots) - 1
	return e
}

// Remove drops the entity behind e. Removing an absent or stale handle is a
// no-op.
func (r *Registry[C]) Remove(e Entity) {
	idx, ok := r.slotIndex(e)
	if !ok {
		return
	}
	r.slots[idx].removed = true
	r.index[e.id()-1] = -1
	r.store.destroy(e)
	if r.iterating == 0 {
		r.Compact()
	}
}

// Alive reports whether e refers to an object still in the registry.
func (r *Registry[C]) Alive(e Entity) bool {
	_, ok := r.slotIndex(e)
	return ok
}

// Get returns the object behind e.
func (r *Registry[C]) Get(e Entity) (Object[C], bool) {
	idx, ok := r.slotIndex(e)
	if !ok {
		return nil, false
	}
	return r.slots[idx].obj, true
}

// Len counts objects not yet removed, including expired ones awaiting Compact.
func (r *Registry[C]) Len() int {
	n := 0
	for _, s := range r.slots {
		if !s.removed {
			n++
		}
	}
	return n
}

// ForEach visits live objects in insertion order until fn returns false.
// Objects added during the pass are not visited; removed or expired objects
// are skipped.
func (r *Registry[C]) ForEach(fn func(Entity, Object[C]) bool) {
	r.iterating++
	defer func() { r.iterating-- }()

	n := len(r.slots)
	for i := 0; i < n; i++ {
		s := r.slots[i]
		if s.removed || s.obj.Expired() {
			continue
		}
		if !fn(s.entity, s.obj) {
			return
		}
	}
}

// ForEachUpdate calls Update on every live object in insertion order.
func (r *Registry[C]) ForEachUpdate(dt float64, ctx C) {
	r.ForEach(func(_ Entity, obj Object[C]) bool {
		obj.Update(dt, ctx)
		return true
	})
}

// ForEachDraw paints live objects in ascending Depth, ties kept in insertion
// order. The order is recomputed on every call.
func (r *Registry[C]) ForEachDraw(target render.Renderer) {
	order := make([]Object[C], 0, len(r.slots))
	r.ForEach(func(_ Entity, obj Object[C]) bool {
		order = append(order, obj)
		return true
	})
	slices.SortStableFunc(order, func(a, b Object[C]) int {
		return cmp.Compare(a.Depth(), b.Depth())
	})
	for _, obj := range order {
		obj.Draw(target)
	}
}

// Compact drops removed and expired objects in one pass, keeping insertion
// order, and returns the handles it released. It does nothing while a pass
// is running.
func (r *Registry[C]) Compact() []Entity {
	if r.iterating > 0 {
		return nil
	}
	var released []Entity
	kept := r.slots[:0]
	for _, s := range r.slots {
		if s.removed {
			continue
		}
		if s.obj.Expired() {
			r.store.destroy(s.entity)
			r.index[s.entity.id()-1] = -1
			released = append(released, s.entity)
			continue
		}
		r.index[s.entity.id()-1] = len(kept)
		kept = append(kept, s)
	}
	clear(r.slots[len(kept):])
	r.slots = kept
	return released
}

func (r *Registry[C]) slotIndex(e Entity) (int, bool) {
	if !r.store.isAlive(e) {
		return 0, false
	}
	id := int(e.id())
	if id > len(r.index) {
		return 0, false
	}
	idx := r.index[id-1]
	if idx < 0 || idx >= len(r.slots) || r.slots[idx].entity != e || r.slots[idx].removed {
		return 0, false
	}
	return idx, true
}
