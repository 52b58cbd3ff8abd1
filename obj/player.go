package obj

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

type Ability uint8

const (
	AbilitySmall Ability = iota
	AbilityBig
	AbilityFire
)

func (a Ability) String() string {
	switch a {
	case AbilityBig:
		return "big"
	case AbilityFire:
		return "fire"
	}
	return "small"
}

// Collect returns the ability after picking up kind. A flower always gives
// fire; a mushroom only grows a small player.
func (a Ability) Collect(kind PickupKind) Ability {
	switch kind {
	case PickupFlower:
		return AbilityFire
	case PickupMushroom:
		if a == AbilitySmall {
			return AbilityBig
		}
	}
	return a
}

// Damaged returns the ability after a hit and whether the player survives.
func (a Ability) Damaged() (Ability, bool) {
	switch a {
	case AbilityFire:
		return AbilityBig, true
	case AbilityBig:
		return AbilitySmall, true
	}
	return AbilitySmall, false
}

type Facing int8

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Player is the controlled character. Once a terminal event has been
// raised the player is frozen and ignores input, contact and physics.
type Player struct {
	Body
	Ability          Ability
	Facing           Facing
	Grounded         bool
	InvincibleFrames int
	SlidingToGoal    bool

	spec     prefabs.PlayerSpec
	goalFake bool
	hurt     bool
	frozen   bool
}

func NewPlayer(x, y float64, spec prefabs.PlayerSpec) *Player {
	return &Player{
		Body:   Body{X: x, Y: y, W: spec.Width, H: spec.Height},
		Facing: FacingRight,
		spec:   spec,
	}
}

// Frozen reports whether the player has raised a terminal event.
func (p *Player) Frozen() bool { return p.frozen }

func (p *Player) Expired() bool { return false }

func (p *Player) Update(dt float64, ctx *Context) {
	switch ctx.Phase {
	case PhasePlayer:
		if p.frozen {
			return
		}
		if p.SlidingToGoal {
			p.slide(dt, ctx)
			return
		}
		p.move(dt, ctx)
	case PhaseSettle:
		p.settle(ctx)
	}
}

func (p *Player) move(dt float64, ctx *Context) {
	dir := ctx.Input.MoveX()
	p.VX = dir * p.spec.MoveSpeed
	if dir < 0 {
		p.Facing = FacingLeft
	} else if dir > 0 {
		p.Facing = FacingRight
	}

	if ctx.Input.Jump && p.Grounded {
		p.VY = -p.spec.JumpSpeed
		p.Grounded = false
		ctx.Emit(Event{Kind: EventJump, X: p.X, Y: p.Y, Ability: p.Ability})
	}

	p.VY += ctx.Tuning.World.Gravity * dt
	p.X += p.VX * dt
	p.Y += p.VY * dt

	p.collide(ctx)

	if p.X < 0 {
		p.X = 0
		p.VX = 0
	}
	if p.Y > ctx.KillY {
		p.die(ctx)
	}
}

func (p *Player) collide(ctx *Context) {
	p.Grounded = false
	for _, plat := range ctx.Tiles.Query(p.Rect()) {
		box, tile := p.Rect(), plat.Rect()
		// An earlier push may already have cleared this tile.
		if !box.Intersects(tile) {
			continue
		}
		res := common.Resolve(box, tile)
		if res.Axis == common.AxisX {
			if res.Push < 0 {
				p.X = tile.X - p.W
			} else {
				p.X = tile.Right()
			}
			p.VX = 0
			continue
		}
		if res.Push < 0 {
			p.Y = tile.Y - p.H
			if p.VY >= 0 {
				p.VY = 0
				p.Grounded = true
			}
			continue
		}
		p.Y = tile.Bottom()
		if p.VY < 0 {
			p.VY = 0
			plat.Bump(p, ctx)
		}
	}
}

func (p *Player) slide(dt float64, ctx *Context) {
	p.VX, p.VY = 0, 0
	p.Y += p.spec.SlideSpeed * dt

	landed := false
	for _, plat := range ctx.Tiles.Query(p.Rect()) {
		tile := plat.Rect()
		if !p.Rect().Intersects(tile) {
			continue
		}
		p.Y = tile.Y - p.H
		landed = true
	}
	if !landed {
		if p.Y <= ctx.KillY {
			return
		}
		// A pole over a pit still resolves the goal. The slide stops at the
		// kill line.
		p.Y = ctx.KillY
	}
	p.Grounded = landed
	if p.goalFake {
		p.finish(ctx, EventLevelFailed)
		return
	}
	p.finish(ctx, EventLevelComplete)
}

func (p *Player) settle(ctx *Context) {
	if !p.hurt && p.InvincibleFrames > 0 {
		p.InvincibleFrames--
	}
	p.hurt = false

	if p.frozen || p.SlidingToGoal {
		return
	}
	if g := ctx.GoalAt(p.Rect()); g != nil {
		p.SlidingToGoal = true
		p.goalFake = g.Fake
		p.VX, p.VY = 0, 0
		ctx.Emit(Event{Kind: EventGoalTouched, X: g.X, Y: g.Y, Ability: p.Ability})
	}
}

// Collect applies a pickup to the player's ability.
func (p *Player) Collect(kind PickupKind, ctx *Context) {
	prev := p.Ability
	p.Ability = prev.Collect(kind)
	ctx.Emit(Event{Kind: EventPickupCollected, X: p.X, Y: p.Y, Ability: p.Ability, Pickup: kind})
	if p.Ability != prev {
		ctx.Emit(Event{Kind: EventAbilityChanged, X: p.X, Y: p.Y, Ability: p.Ability})
	}
}

// Damage applies a hit unless the player is invincible or already done.
func (p *Player) Damage(ctx *Context) {
	if p.frozen || p.SlidingToGoal || p.InvincibleFrames > 0 {
		return
	}
	next, ok := p.Ability.Damaged()
	if !ok {
		p.die(ctx)
		return
	}
	p.Ability = next
	p.InvincibleFrames = p.spec.InvincibleFrames
	p.hurt = true
	ctx.Emit(Event{Kind: EventPlayerDamaged, X: p.X, Y: p.Y, Ability: p.Ability})
	ctx.Emit(Event{Kind: EventAbilityChanged, X: p.X, Y: p.Y, Ability: p.Ability})
}

// Bounce launches the player off a stomped enemy whose top is at y.
func (p *Player) Bounce(y float64) {
	p.Y = y - p.H
	p.VY = -p.spec.StompBounce
	p.Grounded = false
}

func (p *Player) die(ctx *Context) {
	p.finish(ctx, EventPlayerDied)
}

func (p *Player) finish(ctx *Context, kind EventKind) {
	if p.frozen {
		return
	}
	p.frozen = true
	p.VX, p.VY = 0, 0
	ctx.Emit(Event{Kind: kind, X: p.X, Y: p.Y, Ability: p.Ability})
}

func (p *Player) Sprite() string {
	switch p.Ability {
	case AbilityBig:
		return p.spec.Sprites.Big
	case AbilityFire:
		return p.spec.Sprites.Fire
	}
	return p.spec.Sprites.Small
}

func (p *Player) Draw(r render.Renderer) {
	// Blink every four frames while invincible.
	if p.InvincibleFrames > 0 && (p.InvincibleFrames/4)%2 == 1 {
		return
	}
	r.DrawSprite(p.Sprite(), p.X, p.Y, p.W, p.H, p.Facing == FacingLeft)
}
