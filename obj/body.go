package obj

import "github.com/milk9111/platformer/common"

// Body is the position, size and velocity every entity carries. X, Y is the
// top-left corner; W and H never change after construction.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64
}

func (b *Body) Rect() common.Rect {
	return common.Rect{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}

// Depth is the painter's order key: entities higher on screen draw first.
func (b *Body) Depth() float64 {
	return b.Y
}

// NoUpdate is embedded by static variants.
type NoUpdate struct{}

func (NoUpdate) Update(float64, *Context) {}
