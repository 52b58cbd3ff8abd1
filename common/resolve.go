package common

// Axis names the axis a Resolution pushes along.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Resolution is the minimum translation that separates a from b along one
// axis. Push is the signed displacement to add to a's coordinate on Axis:
// negative Y moves a up, negative X moves a left.
type Resolution struct {
	Axis Axis
	Push float64
}

// Resolve computes center-to-center penetration on both axes and pushes a out
// along the axis with the smaller penetration. Ties resolve to the y-axis, so
// a box landing exactly on a platform corner is stood on, not shoved aside.
func Resolve(a, b Rect) Resolution {
	ox, oy := Overlap(a, b)
	if ox < oy {
		push := ox
		if a.CenterX() < b.CenterX() {
			push = -ox
		}
		return Resolution{Axis: AxisX, Push: push}
	}
	push := oy
	if a.CenterY() < b.CenterY() {
		push = -oy
	}
	return Resolution{Axis: AxisY, Push: push}
}

// Apply moves r by the resolution.
func (res Resolution) Apply(r Rect) Rect {
	if res.Axis == AxisX {
		r.X += res.Push
	} else {
		r.Y += res.Push
	}
	return r
}
