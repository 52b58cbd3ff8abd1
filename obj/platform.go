package obj

import "github.com/milk9111/platformer/render"

type TileKind uint8

const (
	TileSolid TileKind = iota
	TileBreakable
	TileQuestion
)

func (k TileKind) String() string {
	switch k {
	case TileBreakable:
		return "breakable"
	case TileQuestion:
		return "question"
	}
	return "solid"
}

type PickupKind string

const (
	PickupFlower   PickupKind = "flower"
	PickupMushroom PickupKind = "mushroom"
)

// Platform is a static tile. Question blocks flip Hit once; breakable
// blocks can be knocked out from below by a big player.
type Platform struct {
	NoUpdate
	Body
	Kind        TileKind
	Sprite      string
	Contents    PickupKind
	EmptySprite string
	Hit         bool

	broken bool
}

func NewPlatform(x, y, w, h float64, kind TileKind, sprite string) *Platform {
	return &Platform{Body: Body{X: x, Y: y, W: w, H: h}, Kind: kind, Sprite: sprite}
}

func (p *Platform) Draw(r render.Renderer) {
	sprite := p.Sprite
	if p.Kind == TileQuestion && p.Hit && p.EmptySprite != "" {
		sprite = p.EmptySprite
	}
	r.DrawSprite(sprite, p.X, p.Y, p.W, p.H, false)
}

func (p *Platform) Expired() bool { return p.broken }

// Bump applies a head hit from below by pl.
func (p *Platform) Bump(pl *Player, ctx *Context) {
	switch p.Kind {
	case TileQuestion:
		if p.Hit {
			return
		}
		p.Hit = true
		ctx.Emit(Event{Kind: EventBlockHit, X: p.X, Y: p.Y, Pickup: p.Contents})
		ctx.RequestPickup(PickupRequest{Kind: p.Contents, X: p.X, Y: p.Y, BlockWidth: p.W})
	case TileBreakable:
		if pl.Ability == AbilitySmall || p.broken {
			return
		}
		p.broken = true
		ctx.Tiles.Remove(p)
		ctx.Emit(Event{Kind: EventBlockBroken, X: p.X, Y: p.Y})
	}
}
