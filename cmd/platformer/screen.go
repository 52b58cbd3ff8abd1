package main

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/assets"
)

// Screen draws sprites onto an ebiten image. Sprites whose file cannot be
// loaded are drawn as flat placeholders in the manifest color; the failure is
// logged once per ref and never blocks the frame.
type Screen struct {
	target   *ebiten.Image
	manifest map[string]assets.SpriteDef
	images   map[string]*ebiten.Image
	logger   *log.Logger
}

func NewScreen(logger *log.Logger) (*Screen, error) {
	manifest, err := assets.LoadManifest()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Screen{
		manifest: manifest,
		images:   map[string]*ebiten.Image{},
		logger:   logger,
	}, nil
}

// Begin sets the image the following draw calls land on.
func (s *Screen) Begin(target *ebiten.Image) {
	s.target = target
}

func (s *Screen) DrawSprite(ref string, x, y, w, h float64, flipped bool) {
	if s == nil || s.target == nil || w <= 0 || h <= 0 {
		return
	}
	img := s.image(ref)
	if img == nil {
		return
	}
	iw := img.Bounds().Dx()
	ih := img.Bounds().Dy()
	if iw <= 0 || ih <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	sx := w / float64(iw)
	sy := h / float64(ih)
	if flipped {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(x+w, y)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x, y)
	}
	s.target.DrawImage(img, op)
}

func (s *Screen) image(ref string) *ebiten.Image {
	if img, ok := s.images[ref]; ok {
		return img
	}

	def, known := s.manifest[ref]
	if !known {
		s.logger.Warn("unknown sprite ref, drawing placeholder", "ref", ref)
	} else if def.File != "" {
		decoded, err := assets.LoadImage(def.File)
		if err == nil {
			img := ebiten.NewImageFromImage(decoded)
			s.images[ref] = img
			return img
		}
		s.logger.Warn("sprite failed to load, drawing placeholder", "ref", ref, "err", err)
	}

	img := ebiten.NewImage(1, 1)
	img.Fill(placeholderColor(def.Color))
	s.images[ref] = img
	return img
}

func placeholderColor(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Magenta
}
