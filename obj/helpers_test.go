package obj

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/prefabs"
)

type harness struct {
	ctx    *Context
	events []Event
}

func newHarness(t *testing.T, tiles ...*Platform) *harness {
	t.Helper()
	tuning, err := prefabs.LoadTuning(t.TempDir())
	require.NoError(t, err)

	ctx := &Context{
		Tuning:   tuning,
		Tiles:    NewCollisionWorld(),
		Entities: ecs.NewRegistry[*Context](),
		Camera:   Camera{Width: tuning.World.ViewportWidth},
		KillY:    10000,
	}
	for _, p := range tiles {
		ctx.Tiles.Add(p)
		ctx.Entities.Add(p)
	}
	return &harness{ctx: ctx}
}

func (h *harness) addPlayer(x, y float64) *Player {
	p := NewPlayer(x, y, h.ctx.Tuning.Player)
	h.ctx.Player = p
	h.ctx.Entities.Add(p)
	return p
}

func (h *harness) addEnemy(x, y float64, dir int, bounds Bounds) *Enemy {
	e := NewEnemy(x, y, dir, bounds, h.ctx.Tuning.Enemy)
	h.ctx.Entities.Add(e)
	return e
}

// tick runs every phase once, the way the world loop does.
func (h *harness) tick(in Intents) {
	h.ctx.Tick++
	h.ctx.Input = in
	for phase := PhasePlayer; phase <= PhaseSettle; phase++ {
		h.ctx.Phase = phase
		h.ctx.Entities.ForEachUpdate(1, h.ctx)
	}
	h.events = append(h.events, h.ctx.DrainEvents()...)
	h.ctx.Entities.Compact()
}

func (h *harness) ticks(n int, in Intents) {
	for range n {
		h.tick(in)
	}
}

func (h *harness) count(kind EventKind) int {
	n := 0
	for _, evt := range h.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

func ground(x, y, w float64) *Platform {
	return NewPlatform(x, y, w, 32, TileSolid, "ground")
}
