package obj

import "github.com/milk9111/platformer/render"

// Goal is the end-of-level pole. Touching a fake one fails the level.
type Goal struct {
	NoUpdate
	Body
	Fake   bool
	Sprite string
}

func NewGoal(x, y, w, h float64, fake bool, sprite string) *Goal {
	return &Goal{Body: Body{X: x, Y: y, W: w, H: h}, Fake: fake, Sprite: sprite}
}

func (g *Goal) Draw(r render.Renderer) {
	r.DrawSprite(g.Sprite, g.X, g.Y, g.W, g.H, false)
}

func (g *Goal) Expired() bool { return false }
