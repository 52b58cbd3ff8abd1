package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRestsOnPlatform(t *testing.T) {
	h := newHarness(t, ground(0, 400, 800))
	p := h.addPlayer(100, 352)

	h.ticks(60, Intents{})

	assert.Equal(t, 400.0, p.Y+p.H)
	assert.Equal(t, 0.0, p.VY)
	assert.True(t, p.Grounded)
}

func TestPlayerLandsExactlyOnTop(t *testing.T) {
	h := newHarness(t, ground(0, 400, 800))
	p := h.addPlayer(100, 137)

	h.ticks(120, Intents{})

	assert.Equal(t, 352.0, p.Y)
	assert.True(t, p.Grounded)
}

func TestPlayerHorizontalIntent(t *testing.T) {
	tests := []struct {
		name   string
		in     Intents
		wantVX float64
		facing Facing
	}{
		{"right", Intents{Right: true}, 4, FacingRight},
		{"left", Intents{Left: true}, -4, FacingLeft},
		{"both cancel", Intents{Left: true, Right: true}, 0, FacingRight},
		{"none", Intents{}, 0, FacingRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, ground(0, 400, 800))
			p := h.addPlayer(100, 352)
			h.tick(tt.in)
			assert.Equal(t, tt.wantVX, p.VX)
			assert.Equal(t, tt.facing, p.Facing)
		})
	}
}

func TestPlayerJumpRequiresGround(t *testing.T) {
	h := newHarness(t, ground(0, 400, 800))
	p := h.addPlayer(100, 352)
	h.tick(Intents{})
	require.True(t, p.Grounded)

	h.tick(Intents{Jump: true})
	assert.Less(t, p.VY, 0.0)
	assert.False(t, p.Grounded)
	assert.Equal(t, 1, h.count(EventJump))

	vy := p.VY
	h.tick(Intents{Jump: true})
	assert.Equal(t, vy+h.ctx.Tuning.World.Gravity, p.VY, "no jump in mid air")
}

func TestPlayerStoppedByWall(t *testing.T) {
	wall := NewPlatform(200, 300, 32, 100, TileSolid, "brick")
	h := newHarness(t, wall)
	p := h.addPlayer(165, 352)

	h.tick(Intents{Right: true})

	assert.Equal(t, 168.0, p.X)
	assert.Equal(t, 0.0, p.VX)
}

func TestPlayerClampedAtLevelStart(t *testing.T) {
	h := newHarness(t, ground(0, 400, 800))
	p := h.addPlayer(2, 352)

	h.ticks(3, Intents{Left: true})

	assert.Equal(t, 0.0, p.X)
}

func TestQuestionBlockHitOnce(t *testing.T) {
	block := NewPlatform(100, 250, 32, 32, TileQuestion, "question")
	block.Contents = PickupMushroom
	h := newHarness(t, block)
	p := h.addPlayer(100, 285)
	p.VY = -6

	h.tick(Intents{})

	assert.True(t, block.Hit)
	assert.Equal(t, 282.0, p.Y)
	reqs := h.ctx.TakePickupRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, PickupRequest{Kind: PickupMushroom, X: 100, Y: 250, BlockWidth: 32}, reqs[0])

	p.Y, p.VY = 285, -6
	h.tick(Intents{})
	assert.Empty(t, h.ctx.TakePickupRequests())
	assert.Equal(t, 1, h.count(EventBlockHit))
}

func TestBreakableBlock(t *testing.T) {
	tests := []struct {
		name    string
		ability Ability
		broken  bool
	}{
		{"small bounces off", AbilitySmall, false},
		{"big breaks", AbilityBig, true},
		{"fire breaks", AbilityFire, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brick := NewPlatform(100, 250, 32, 32, TileBreakable, "brick")
			h := newHarness(t, brick)
			p := h.addPlayer(100, 285)
			p.Ability = tt.ability
			p.VY = -6

			h.tick(Intents{})

			assert.Equal(t, tt.broken, brick.Expired())
			assert.Equal(t, !tt.broken, h.ctx.Tiles.Solid(brick.Rect()))
		})
	}
}

func TestAbilityTransitions(t *testing.T) {
	collect := []struct {
		from Ability
		kind PickupKind
		want Ability
	}{
		{AbilitySmall, PickupFlower, AbilityFire},
		{AbilityBig, PickupFlower, AbilityFire},
		{AbilityFire, PickupFlower, AbilityFire},
		{AbilitySmall, PickupMushroom, AbilityBig},
		{AbilityBig, PickupMushroom, AbilityBig},
		{AbilityFire, PickupMushroom, AbilityFire},
	}
	for _, tt := range collect {
		t.Run(tt.from.String()+"+"+string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Collect(tt.kind))
		})
	}

	damage := []struct {
		from  Ability
		want  Ability
		alive bool
	}{
		{AbilityFire, AbilityBig, true},
		{AbilityBig, AbilitySmall, true},
		{AbilitySmall, AbilitySmall, false},
	}
	for _, tt := range damage {
		t.Run("damage "+tt.from.String(), func(t *testing.T) {
			got, alive := tt.from.Damaged()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.alive, alive)
		})
	}
}

func TestInvincibilityWindow(t *testing.T) {
	h := newHarness(t, ground(0, 400, 800))
	p := h.addPlayer(100, 352)
	p.Ability = AbilityBig
	frames := h.ctx.Tuning.Player.InvincibleFrames
	require.Positive(t, frames)

	p.Damage(h.ctx)
	h.tick(Intents{})
	require.Equal(t, AbilitySmall, p.Ability)
	require.Equal(t, frames, p.InvincibleFrames)

	for i := range frames {
		p.Damage(h.ctx)
		require.False(t, p.Frozen(), "hit %d landed during invincibility", i)
		h.tick(Intents{})
	}
	assert.Equal(t, 0, p.InvincibleFrames)

	p.Damage(h.ctx)
	assert.True(t, p.Frozen())
	h.events = append(h.events, h.ctx.DrainEvents()...)
	assert.Equal(t, 1, h.count(EventPlayerDied))
	assert.Equal(t, 1, h.count(EventPlayerDamaged))
}

func TestFallingOutOfLevelDiesOnce(t *testing.T) {
	h := newHarness(t)
	h.ctx.KillY = 600
	p := h.addPlayer(100, 100)

	h.ticks(200, Intents{Right: true})

	assert.True(t, p.Frozen())
	assert.Equal(t, 1, h.count(EventPlayerDied))
}

func TestGoalSlideSignalsOnce(t *testing.T) {
	tests := []struct {
		name string
		fake bool
		want EventKind
		not  EventKind
	}{
		{"real goal completes", false, EventLevelComplete, EventLevelFailed},
		{"fake goal fails", true, EventLevelFailed, EventLevelComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, ground(0, 400, 2000))
			p := h.addPlayer(480, 352)
			h.ctx.Entities.Add(NewGoal(500, 80, 8, 320, tt.fake, "goal_pole"))

			h.tick(Intents{Right: true})
			require.True(t, p.SlidingToGoal)
			assert.Equal(t, 0.0, p.VX)

			h.ticks(30, Intents{Right: true, Jump: true})

			assert.Equal(t, 1, h.count(tt.want))
			assert.Zero(t, h.count(tt.not))
			assert.True(t, p.Frozen())
			assert.Equal(t, 352.0, p.Y)
		})
	}
}

func TestGoalSlideDescends(t *testing.T) {
	h := newHarness(t, ground(0, 400, 2000))
	p := h.addPlayer(480, 200)
	p.VY = 0
	h.ctx.Entities.Add(NewGoal(490, 80, 8, 320, false, "goal_pole"))

	h.tick(Intents{})
	require.True(t, p.SlidingToGoal)
	y := p.Y

	h.tick(Intents{Left: true})
	assert.Equal(t, y+h.ctx.Tuning.Player.SlideSpeed, p.Y)
	assert.Equal(t, 480.0, p.X)
	assert.Zero(t, h.count(EventLevelComplete))

	h.ticks(200, Intents{})
	assert.Equal(t, 1, h.count(EventLevelComplete))
	assert.Equal(t, 352.0, p.Y)
}

func TestGoalSlideOverPitResolvesGoal(t *testing.T) {
	tests := []struct {
		name string
		fake bool
		want EventKind
	}{
		{"real goal", false, EventLevelComplete},
		{"fake goal", true, EventLevelFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.ctx.KillY = 300
			p := h.addPlayer(480, 200)
			h.ctx.Entities.Add(NewGoal(490, 80, 8, 320, tt.fake, "goal_pole"))

			h.tick(Intents{})
			require.True(t, p.SlidingToGoal)

			h.ticks(200, Intents{})

			assert.Equal(t, 1, h.count(tt.want))
			assert.Zero(t, h.count(EventPlayerDied))
			assert.True(t, p.Frozen())
			assert.False(t, p.Grounded)
			assert.Equal(t, 300.0, p.Y)
		})
	}
}
