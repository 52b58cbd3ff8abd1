package obj

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

// Bounds limits a patrol to [Min, Max]. Zero bounds mean unbounded.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) Set() bool { return b.Max > b.Min }

// Enemy walks back and forth, turning at ledges, walls and patrol bounds.
// A defeated enemy stays in the registry, inert, for one more tick.
type Enemy struct {
	Body
	Direction int
	Alive     bool
	Bounds    Bounds
	Sprite    string

	spec      prefabs.EnemySpec
	deadTicks int
}

func NewEnemy(x, y float64, direction int, bounds Bounds, spec prefabs.EnemySpec) *Enemy {
	if direction != 1 {
		direction = -1
	}
	return &Enemy{
		Body:      Body{X: x, Y: y, W: spec.Width, H: spec.Height},
		Direction: direction,
		Alive:     true,
		Bounds:    bounds,
		Sprite:    spec.Sprite,
		spec:      spec,
	}
}

func (e *Enemy) Expired() bool { return !e.Alive && e.deadTicks > 0 }

func (e *Enemy) Update(dt float64, ctx *Context) {
	if ctx.Phase != PhaseEnemies {
		return
	}
	if !e.Alive {
		e.deadTicks++
		return
	}
	e.patrol(dt, ctx)
	e.touch(ctx)
}

func (e *Enemy) patrol(dt float64, ctx *Context) {
	step := float64(e.Direction) * e.spec.MoveSpeed * dt
	e.X += step

	if ctx.Tiles.Solid(e.WallBox()) {
		e.X -= step
		e.turn()
		return
	}
	if e.Bounds.Set() {
		if e.X < e.Bounds.Min {
			e.X = e.Bounds.Min
			e.turn()
			return
		}
		if e.X+e.W > e.Bounds.Max {
			e.X = e.Bounds.Max - e.W
			e.turn()
			return
		}
	}
	if !ctx.Tiles.Solid(e.Probe()) {
		e.turn()
	}
}

// WallBox is the box tested against walls. The bottom quarter is left out so
// the floor an enemy stands in, even when its spawn sits slightly sunk, is
// never mistaken for a wall.
func (e *Enemy) WallBox() common.Rect {
	return common.Rect{X: e.X, Y: e.Y, Width: e.W, Height: e.H * 3 / 4}
}

// Probe is the small box just past the leading foot used to detect ledges.
func (e *Enemy) Probe() common.Rect {
	x := e.X + e.W + e.spec.ProbeOffset
	if e.Direction < 0 {
		x = e.X - e.spec.ProbeOffset
	}
	return common.Rect{X: x, Y: e.Y + e.H + 1, Width: e.spec.ProbeSize, Height: e.spec.ProbeSize}
}

func (e *Enemy) turn() { e.Direction = -e.Direction }

func (e *Enemy) touch(ctx *Context) {
	p := ctx.Player
	if p == nil || p.Frozen() || p.SlidingToGoal {
		return
	}
	if !e.Rect().Intersects(p.Rect()) {
		return
	}
	tolerance := math.Max(p.spec.StompTolerance, p.VY)
	if p.VY > 0 && p.Rect().Bottom()-e.Y <= tolerance {
		e.Kill(ctx, EventEnemyStomped)
		p.Bounce(e.Y)
		return
	}
	p.Damage(ctx)
}

// Kill marks the enemy defeated. It drops out of contact checks at once
// and leaves the registry at the end of the next tick.
func (e *Enemy) Kill(ctx *Context, cause EventKind) {
	if !e.Alive {
		return
	}
	e.Alive = false
	e.VX = 0
	if e.spec.DeadSprite != "" {
		e.Sprite = e.spec.DeadSprite
	}
	ctx.Emit(Event{Kind: cause, X: e.X, Y: e.Y})
}

func (e *Enemy) Draw(r render.Renderer) {
	r.DrawSprite(e.Sprite, e.X, e.Y, e.W, e.H, e.Direction > 0)
}
