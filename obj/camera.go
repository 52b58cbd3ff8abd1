package obj

import (
	"math"

	"github.com/milk9111/platformer/prefabs"
)

const (
	CameraFollow = "follow"
	CameraOffset = "offset"
)

// Camera is recomputed from the player each time it is needed.
type Camera struct {
	X     float64
	Width float64
}

func CameraFor(p *Player, world prefabs.WorldSpec) Camera {
	cam := Camera{Width: world.ViewportWidth}
	if p == nil {
		return cam
	}
	switch world.Camera.Mode {
	case CameraOffset:
		cam.X = p.X - world.Camera.Offset
	default:
		cam.X = math.Max(0, p.X-world.ViewportWidth/2)
	}
	return cam
}

// Contains reports whether the horizontal span [x0, x1] is within margin of
// the view.
func (c Camera) Contains(x0, x1, margin float64) bool {
	return x1 >= c.X-margin && x0 <= c.X+c.Width+margin
}
