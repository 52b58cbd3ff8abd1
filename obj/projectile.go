package obj

import (
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

// Projectile is a fireball travelling horizontally from the player.
type Projectile struct {
	Body
	Radius      float64
	OwnerFacing Facing

	spec    prefabs.ProjectileSpec
	expired bool
}

// NewProjectile launches a projectile from the front of p at its mid height.
func NewProjectile(p *Player, spec prefabs.ProjectileSpec) *Projectile {
	r := spec.Radius
	cx := p.X + p.W/2 + float64(p.Facing)*p.W/2
	return &Projectile{
		Body: Body{
			X:  cx - r,
			Y:  p.Y + p.H/2 - r,
			W:  2 * r,
			H:  2 * r,
			VX: float64(p.Facing) * spec.Speed,
		},
		Radius:      r,
		OwnerFacing: p.Facing,
		spec:        spec,
	}
}

func (pr *Projectile) Expired() bool { return pr.expired }

func (pr *Projectile) Update(dt float64, ctx *Context) {
	if ctx.Phase != PhaseProjectiles || pr.expired {
		return
	}
	pr.X += pr.VX * dt

	if !ctx.Camera.Contains(pr.X, pr.X+pr.W, pr.spec.WindowMargin) {
		pr.expired = true
		return
	}
	if ctx.Tiles.Solid(pr.Rect()) {
		pr.expired = true
		return
	}
	ctx.Enemies(func(e *Enemy) bool {
		if !e.Rect().Intersects(pr.Rect()) {
			return true
		}
		e.Kill(ctx, EventEnemyShot)
		pr.expired = true
		return false
	})
}

func (pr *Projectile) Draw(r render.Renderer) {
	r.DrawSprite(pr.spec.Sprite, pr.X, pr.Y, pr.W, pr.H, pr.OwnerFacing == FacingLeft)
}
