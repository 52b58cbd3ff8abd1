package common

import (
	"errors"
	"math"
)

// ErrDegenerateRect is returned when a box has a NaN/Inf coordinate or a
// non-positive size. Collision resolution is undefined for such boxes.
var ErrDegenerateRect = errors.New("common: degenerate rect")

// Rect is an axis-aligned box with a top-left origin. Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Valid reports whether r can take part in collision math.
func (r Rect) Valid() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width > 0 && r.Height > 0
}

// Check returns ErrDegenerateRect when r is not Valid.
func (r Rect) Check() error {
	if !r.Valid() {
		return ErrDegenerateRect
	}
	return nil
}

// Intersects reports a strict overlap; boxes that only share an edge do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	return Intersects(r, other)
}

func Intersects(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Overlap returns the penetration depths of a and b on both axes. Values are
// zero or negative when the boxes are apart on that axis.
func Overlap(a, b Rect) (x, y float64) {
	x = (a.Width+b.Width)/2 - math.Abs(a.CenterX()-b.CenterX())
	y = (a.Height+b.Height)/2 - math.Abs(a.CenterY()-b.CenterY())
	return x, y
}

// OverlapArea is the area shared by a and b, zero when apart.
func OverlapArea(a, b Rect) float64 {
	w := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	h := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
