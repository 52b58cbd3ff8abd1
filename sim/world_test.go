package sim

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

type recordingSession struct {
	died, complete, failed int
}

func (s *recordingSession) OnPlayerDied()    { s.died++ }
func (s *recordingSession) OnLevelComplete() { s.complete++ }
func (s *recordingSession) OnLevelFailed()   { s.failed++ }

type fixture struct {
	world   *World
	session *recordingSession
	events  []obj.Event
}

func newFixture(t *testing.T, levelJSON string) *fixture {
	t.Helper()
	lvl, err := levels.Parse([]byte(levelJSON), levels.Options{Name: t.Name(), Logger: log.New(io.Discard)})
	require.NoError(t, err)
	tuning, err := prefabs.LoadTuning(t.TempDir())
	require.NoError(t, err)

	f := &fixture{session: &recordingSession{}}
	f.world, err = NewWorld(lvl, tuning, Options{
		Session:  f.session,
		Observer: ObserverFunc(func(evt obj.Event) { f.events = append(f.events, evt) }),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) run(n int, in obj.Intents) {
	for range n {
		f.world.Tick(in)
	}
}

func (f *fixture) count(kind obj.EventKind) int {
	n := 0
	for _, evt := range f.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

const restLevel = `{
	"name": "rest",
	"playerStart": {"x": 100, "y": 352},
	"tiles": [{"x": 0, "y": 400, "w": 600, "h": 100, "kind": "solid"}],
	"enemies": [],
	"goals": []
}`

func TestPlayerAtRestStaysPut(t *testing.T) {
	f := newFixture(t, restLevel)
	p := f.world.Player()

	f.world.Tick(obj.Intents{})
	assert.Equal(t, 352.0, p.Y)
	assert.True(t, p.Grounded)
	assert.Equal(t, 0.0, p.VY)

	f.run(120, obj.Intents{})
	assert.Equal(t, 352.0, p.Y)
	assert.True(t, p.Grounded)
	assert.Equal(t, 0.0, p.VY)
	assert.Equal(t, OutcomeNone, f.world.Outcome())
}

func TestEnemyTurnsAtLedgeAcrossGap(t *testing.T) {
	f := newFixture(t, `{
		"name": "gap",
		"playerStart": {"x": 500, "y": 352},
		"tiles": [
			{"x": 0, "y": 400, "w": 600, "h": 100, "kind": "solid"},
			{"x": 632, "y": 400, "w": 112, "h": 100, "kind": "solid"}
		],
		"enemies": [{"x": 700, "y": 360, "direction": 1}],
		"goals": []
	}`)
	enemies := f.world.Enemies()
	require.Len(t, enemies, 1)
	e := enemies[0]
	spec := f.world.Tuning().Enemy
	reach := spec.ProbeOffset + spec.ProbeSize

	f.world.Tick(obj.Intents{Right: true})
	assert.Equal(t, -1, e.Direction)
	assert.Equal(t, 504.0, f.world.Player().X)

	for range 600 {
		f.world.Tick(obj.Intents{})
		require.LessOrEqual(t, e.X+e.W, 744+reach)
		require.GreaterOrEqual(t, e.X, 632-reach)
	}
}

func TestWorldExposesLevelAndTiles(t *testing.T) {
	f := newFixture(t, `{
		"tiles": [{"x": 0, "y": 400, "repeat": 3}, {"x": 200, "y": 272, "kind": "breakable"}],
		"enemies": [],
		"playerStart": {"x": 10, "y": 352},
		"goals": []
	}`)

	require.NotNil(t, f.world.Level())
	assert.Equal(t, t.Name(), f.world.Level().Name)
	assert.Len(t, f.world.Level().Tiles, 4)
	assert.Equal(t, 4, f.world.Tiles().Len())
}

func TestSunkEnemySpawnPatrols(t *testing.T) {
	f := newFixture(t, `{
		"name": "sunk",
		"playerStart": {"x": 100, "y": 352},
		"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32}],
		"enemies": [{"x": 700, "y": 360.5}],
		"goals": []
	}`)
	e := f.world.Enemies()[0]

	f.run(120, obj.Intents{})

	assert.Equal(t, -1, e.Direction)
	assert.InDelta(t, 700-120*f.world.Tuning().Enemy.MoveSpeed, e.X, 1e-6)
}

const fireLevel = `{
	"name": "fire",
	"playerStart": {"x": 100, "y": 352},
	"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32, "kind": "solid"}],
	"enemies": [],
	"goals": []
}`

func TestProjectileCap(t *testing.T) {
	f := newFixture(t, fireLevel)
	f.world.Player().Ability = obj.AbilityFire

	for range 3 {
		f.world.Tick(obj.Intents{Fire: true})
		f.world.Tick(obj.Intents{})
	}
	require.Equal(t, 3, f.world.LiveProjectiles())

	f.world.Tick(obj.Intents{Fire: true})
	assert.Equal(t, 3, f.world.LiveProjectiles())
	assert.False(t, f.world.Fire())
	assert.Equal(t, 3, f.count(obj.EventProjectileFired))
}

func TestFireIsEdgeTriggered(t *testing.T) {
	f := newFixture(t, fireLevel)
	f.world.Player().Ability = obj.AbilityFire

	f.run(10, obj.Intents{Fire: true})

	assert.Equal(t, 1, f.world.LiveProjectiles())
}

func TestFireNeedsFireAbility(t *testing.T) {
	f := newFixture(t, fireLevel)

	f.world.Tick(obj.Intents{Fire: true})

	assert.Zero(t, f.world.LiveProjectiles())
}

func TestProjectilesExpireOffscreen(t *testing.T) {
	f := newFixture(t, fireLevel)
	f.world.Player().Ability = obj.AbilityFire

	f.world.Tick(obj.Intents{Fire: true})
	require.Equal(t, 1, f.world.LiveProjectiles())
	before := f.world.EntityCount()

	f.run(200, obj.Intents{})
	assert.Zero(t, f.world.LiveProjectiles())
	assert.Equal(t, before-1, f.world.EntityCount())
}

func TestGoalSignalsOnce(t *testing.T) {
	tests := []struct {
		name     string
		fake     string
		complete int
		failed   int
		outcome  Outcome
	}{
		{"real", "false", 1, 0, OutcomeComplete},
		{"fake", "true", 0, 1, OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, `{
				"name": "goal",
				"playerStart": {"x": 180, "y": 352},
				"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32}],
				"enemies": [],
				"goals": [{"x": 200, "y": 80, "w": 8, "h": 320, "fake": `+tt.fake+`}]
			}`)

			f.run(60, obj.Intents{Right: true})

			assert.Equal(t, tt.complete, f.session.complete)
			assert.Equal(t, tt.failed, f.session.failed)
			assert.Zero(t, f.session.died)
			assert.Equal(t, tt.outcome, f.world.Outcome())
		})
	}
}

const enemyLevel = `{
	"name": "enemy",
	"playerStart": {"x": 340, "y": 352},
	"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32}],
	"enemies": [{"x": 300, "y": 360, "direction": 1}],
	"goals": []
}`

func TestSideHitInvincibilityWindow(t *testing.T) {
	f := newFixture(t, enemyLevel)
	p := f.world.Player()
	p.Ability = obj.AbilityBig
	frames := f.world.Tuning().Player.InvincibleFrames

	f.world.Tick(obj.Intents{})
	require.Equal(t, obj.AbilitySmall, p.Ability)
	require.Equal(t, 1, f.count(obj.EventPlayerDamaged))

	for range frames {
		f.world.Tick(obj.Intents{})
		require.Equal(t, obj.AbilitySmall, p.Ability)
		require.Zero(t, f.session.died)
	}
	assert.Equal(t, 1, f.count(obj.EventPlayerDamaged))
}

func TestSmallPlayerDiesOnce(t *testing.T) {
	f := newFixture(t, enemyLevel)

	f.run(30, obj.Intents{})

	assert.Equal(t, 1, f.session.died)
	assert.Equal(t, OutcomeDied, f.world.Outcome())
	assert.True(t, f.world.Player().Frozen())
}

func TestStompRemovesEnemyNextTick(t *testing.T) {
	f := newFixture(t, `{
		"name": "stomp",
		"playerStart": {"x": 300, "y": 250},
		"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32}],
		"enemies": [{"x": 300, "y": 360}],
		"goals": []
	}`)
	before := f.world.EntityCount()

	stompTick := 0
	for i := 1; i <= 60 && stompTick == 0; i++ {
		f.world.Tick(obj.Intents{})
		if f.count(obj.EventEnemyStomped) > 0 {
			stompTick = i
		}
	}
	require.NotZero(t, stompTick, "enemy never stomped")
	assert.Empty(t, f.world.Enemies())
	assert.Equal(t, before, f.world.EntityCount())
	assert.Less(t, f.world.Player().VY, 0.0)

	f.world.Tick(obj.Intents{})
	assert.Equal(t, before-1, f.world.EntityCount())
	assert.Zero(t, f.session.died)
}

func TestFlowerFromQuestionBlock(t *testing.T) {
	f := newFixture(t, `{
		"name": "flower",
		"playerStart": {"x": 100, "y": 352},
		"tiles": [
			{"x": 0, "y": 400, "w": 800, "h": 32},
			{"x": 100, "y": 272, "kind": "question", "contents": "flower"}
		],
		"enemies": [],
		"goals": []
	}`)
	p := f.world.Player()

	f.world.Tick(obj.Intents{})
	require.True(t, p.Grounded)
	f.run(60, obj.Intents{Jump: true})
	f.run(60, obj.Intents{})

	assert.Equal(t, 1, f.count(obj.EventBlockHit))
	assert.Equal(t, 1, f.count(obj.EventPickupSpawned))
	require.Equal(t, obj.AbilitySmall, p.Ability)

	// Stand on the block where the flower rests.
	p.X, p.Y, p.VY = 100, 272-p.H, 0
	f.world.Tick(obj.Intents{})

	assert.Equal(t, obj.AbilityFire, p.Ability)
	assert.Equal(t, 1, f.count(obj.EventPickupCollected))
}

func TestFallingOffLevelDies(t *testing.T) {
	f := newFixture(t, `{
		"name": "pit",
		"playerStart": {"x": 100, "y": 100},
		"tiles": [{"x": 500, "y": 400, "w": 100, "h": 32}],
		"enemies": [],
		"goals": []
	}`)

	f.run(300, obj.Intents{})

	assert.Equal(t, 1, f.session.died)
	assert.Equal(t, 1, f.count(obj.EventPlayerDied))
}

func TestDrawUsesCamera(t *testing.T) {
	f := newFixture(t, `{
		"name": "draw",
		"playerStart": {"x": 1000, "y": 352},
		"tiles": [{"x": 0, "y": 400, "w": 2000, "h": 32, "sprite": "ground"}],
		"enemies": [],
		"goals": []
	}`)
	var rec render.Recorder

	f.world.Draw(&rec)

	require.Equal(t, []string{"player_small", "ground"}, rec.Refs())
	assert.Equal(t, 400.0, rec.Sprites[0].X)
	assert.Equal(t, -600.0, rec.Sprites[1].X)
}

func TestNewWorldRejectsBadInput(t *testing.T) {
	tuning, err := prefabs.LoadTuning(t.TempDir())
	require.NoError(t, err)

	_, err = NewWorld(nil, tuning, Options{})
	assert.ErrorIs(t, err, ErrNilLevel)

	lvl := &levels.Level{Name: "x"}
	_, err = NewWorld(lvl, nil, Options{})
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)

	bad := *tuning
	bad.Player.Width = 0
	_, err = NewWorld(lvl, &bad, Options{})
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)
}
