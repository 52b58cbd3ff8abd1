package obj

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

const collisionTypeSolid cp.CollisionType = 1

// CollisionWorld indexes the static platforms in a chipmunk space and
// answers overlap queries against them. The space is never stepped; only
// its bounding-box index is used.
type CollisionWorld struct {
	space  *cp.Space
	shapes map[*Platform]*cp.Shape
}

func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{
		space:  cp.NewSpace(),
		shapes: make(map[*Platform]*cp.Shape),
	}
}

// Add indexes p. Adding the same platform twice is a no-op.
func (cw *CollisionWorld) Add(p *Platform) {
	if cw == nil || p == nil {
		return
	}
	if _, ok := cw.shapes[p]; ok {
		return
	}
	shape := cp.NewBox2(cw.space.StaticBody, toBB(p.Rect()), 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = p
	cw.space.AddShape(shape)
	cw.shapes[p] = shape
}

// Remove drops p from the index, used when a block breaks.
func (cw *CollisionWorld) Remove(p *Platform) {
	if cw == nil || p == nil {
		return
	}
	shape, ok := cw.shapes[p]
	if !ok {
		return
	}
	cw.space.RemoveShape(shape)
	delete(cw.shapes, p)
}

func (cw *CollisionWorld) Len() int {
	if cw == nil {
		return 0
	}
	return len(cw.shapes)
}

// Query returns the platforms strictly overlapping r, largest overlap first.
// Resolving in that order keeps a body sliding along a row of tiles from
// catching on the seam between two of them.
func (cw *CollisionWorld) Query(r common.Rect) []*Platform {
	if cw == nil || len(cw.shapes) == 0 {
		return nil
	}
	var hits []*Platform
	cw.space.BBQuery(toBB(r), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		p, ok := shape.UserData.(*Platform)
		if !ok || !common.Intersects(r, p.Rect()) {
			return
		}
		hits = append(hits, p)
	}, nil)

	slices.SortFunc(hits, func(a, b *Platform) int {
		if c := cmp.Compare(common.OverlapArea(r, b.Rect()), common.OverlapArea(r, a.Rect())); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return hits
}

// Solid reports whether any platform overlaps r.
func (cw *CollisionWorld) Solid(r common.Rect) bool {
	if cw == nil || len(cw.shapes) == 0 {
		return false
	}
	found := false
	cw.space.BBQuery(toBB(r), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if p, ok := shape.UserData.(*Platform); ok && common.Intersects(r, p.Rect()) {
			found = true
		}
	}, nil)
	return found
}

// Screen space grows downward, so Y maps onto chipmunk's bottom edge.
func toBB(r common.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
}
