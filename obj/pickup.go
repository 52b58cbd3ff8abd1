package obj

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

// Pickup emerges from a question block, rising until it sits on top of the
// block. Only a resting pickup can be collected.
type Pickup struct {
	Body
	Kind   PickupKind
	Sprite string

	restY     float64
	riseSpeed float64
	collected bool
}

// NewPickup centers a pickup of kind over the block described by req.
func NewPickup(req PickupRequest, spec prefabs.PickupSpec) *Pickup {
	return &Pickup{
		Body: Body{
			X: req.X + (req.BlockWidth-spec.Width)/2,
			Y: req.Y,
			W: spec.Width,
			H: spec.Height,
		},
		Kind:      req.Kind,
		Sprite:    spec.Sprites[string(req.Kind)],
		restY:     req.Y - spec.Height,
		riseSpeed: spec.RiseSpeed,
	}
}

// Collectible reports whether the pickup has finished rising.
func (p *Pickup) Collectible() bool { return p.Y <= p.restY }

func (p *Pickup) Expired() bool { return p.collected }

func (p *Pickup) Update(dt float64, ctx *Context) {
	if ctx.Phase != PhasePickups || p.collected {
		return
	}
	if !p.Collectible() {
		p.Y = common.Approach(p.Y, p.restY, p.riseSpeed*dt)
		return
	}
	pl := ctx.Player
	if pl == nil || pl.Frozen() || !p.Rect().Intersects(pl.Rect()) {
		return
	}
	pl.Collect(p.Kind, ctx)
	p.collected = true
}

func (p *Pickup) Draw(r render.Renderer) {
	r.DrawSprite(p.Sprite, p.X, p.Y, p.W, p.H, false)
}
