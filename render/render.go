package render

// Renderer receives sprite draw calls in paint order. Coordinates are in
// screen space; the renderer owns image decoding and target setup.
type Renderer interface {
	DrawSprite(ref string, x, y, w, h float64, flipped bool)
}

// Offset projects world coordinates into screen space by subtracting the
// camera position before forwarding to the wrapped renderer.
type Offset struct {
	Target Renderer
	X, Y   float64
}

func (o Offset) DrawSprite(ref string, x, y, w, h float64, flipped bool) {
	if o.Target == nil {
		return
	}
	o.Target.DrawSprite(ref, x-o.X, y-o.Y, w, h, flipped)
}

// Sprite is one recorded draw call.
type Sprite struct {
	Ref     string
	X, Y    float64
	W, H    float64
	Flipped bool
}

// Recorder keeps every draw call in order. Headless runs and tests use it in
// place of a screen.
type Recorder struct {
	Sprites []Sprite
}

func (r *Recorder) DrawSprite(ref string, x, y, w, h float64, flipped bool) {
	r.Sprites = append(r.Sprites, Sprite{Ref: ref, X: x, Y: y, W: w, H: h, Flipped: flipped})
}

// Reset drops recorded calls and keeps the backing array.
func (r *Recorder) Reset() {
	r.Sprites = r.Sprites[:0]
}

// Refs returns the recorded sprite refs in draw order.
func (r *Recorder) Refs() []string {
	out := make([]string, 0, len(r.Sprites))
	for _, s := range r.Sprites {
		out = append(out, s.Ref)
	}
	return out
}
