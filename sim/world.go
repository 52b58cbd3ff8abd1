package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

// dt is fixed: one simulation step per tick regardless of wall time.
const dt = 1.0

var ErrNilLevel = errors.New("sim: nil level")

var defaultSprites = map[obj.TileKind]string{
	obj.TileSolid:     "ground",
	obj.TileBreakable: "brick",
	obj.TileQuestion:  "question",
}

type Options struct {
	Logger   *log.Logger
	Session  Session
	Observer Observer
}

// World is the state of one play session. It owns every entity and is
// only touched from the goroutine calling Tick and Draw.
type World struct {
	ID uuid.UUID

	level    *levels.Level
	tuning   *prefabs.Tuning
	logger   *log.Logger
	session  Session
	observer Observer

	entities *ecs.Registry[*obj.Context]
	tiles    *obj.CollisionWorld
	player   *obj.Player
	ctx      *obj.Context
	systems  *ecs.Scheduler[*World]

	tick     uint64
	prevFire bool
	outcome  Outcome
}

// NewWorld builds a session from a parsed level. The level is not
// modified.
func NewWorld(level *levels.Level, tuning *prefabs.Tuning, opts Options) (*World, error) {
	if level == nil {
		return nil, ErrNilLevel
	}
	if tuning == nil {
		return nil, fmt.Errorf("sim: nil tuning: %w", prefabs.ErrInvalidSpec)
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("sim: tuning: %w", err)
	}

	w := &World{
		ID:       uuid.New(),
		level:    level,
		tuning:   tuning,
		logger:   opts.Logger,
		session:  opts.Session,
		observer: opts.Observer,
		entities: ecs.NewRegistry[*obj.Context](),
		tiles:    obj.NewCollisionWorld(),
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.logger = w.logger.With("session", w.ID.String()[:8])
	if w.session == nil {
		w.session = nopSession{}
	}

	if err := w.populate(); err != nil {
		return nil, err
	}

	w.ctx = &obj.Context{
		Tuning:   tuning,
		Player:   w.player,
		Tiles:    w.tiles,
		Entities: w.entities,
		Camera:   obj.CameraFor(w.player, tuning.World),
		KillY:    level.Height + tuning.World.FallMargin,
	}
	w.systems = ecs.NewScheduler[*World](
		ecs.SystemFunc[*World]((*World).fireTrigger),
		phase(obj.PhasePlayer),
		ecs.SystemFunc[*World]((*World).followCamera),
		phase(obj.PhaseEnemies),
		phase(obj.PhaseProjectiles),
		phase(obj.PhasePickups),
		ecs.SystemFunc[*World]((*World).spawnPickups),
		phase(obj.PhaseSettle),
		ecs.SystemFunc[*World]((*World).dispatch),
		ecs.SystemFunc[*World]((*World).compact),
	)

	w.logger.Info("session started",
		"level", level.Name,
		"tiles", w.tiles.Len(),
		"enemies", len(level.Enemies),
		"goals", len(level.Goals),
	)
	return w, nil
}

func (w *World) populate() error {
	for i, t := range w.level.Tiles {
		kind := tileKind(t.Kind)
		sprite := t.Sprite
		if sprite == "" {
			sprite = defaultSprites[kind]
		}
		p := obj.NewPlatform(t.X, t.Y, t.W, t.H, kind, sprite)
		if err := p.Rect().Check(); err != nil {
			return fmt.Errorf("sim: tiles[%d]: %w", i, err)
		}
		if kind == obj.TileQuestion {
			p.Contents = obj.PickupKind(t.Contents)
			p.EmptySprite = w.tuning.World.EmptyBlock
		}
		w.tiles.Add(p)
		w.entities.Add(p)
	}

	for _, g := range w.level.Goals {
		w.entities.Add(obj.NewGoal(g.X, g.Y, g.W, g.H, g.Fake, w.tuning.World.GoalSprite))
	}

	for i, spawn := range w.level.Enemies {
		bounds := obj.Bounds{Min: spawn.PatrolBounds.Min, Max: spawn.PatrolBounds.Max}
		e := obj.NewEnemy(spawn.X, spawn.Y, spawn.Direction, bounds, w.tuning.Enemy)
		if spawn.Sprite != "" {
			e.Sprite = spawn.Sprite
		}
		if err := e.Rect().Check(); err != nil {
			return fmt.Errorf("sim: enemies[%d]: %w", i, err)
		}
		w.entities.Add(e)
	}

	start := w.level.PlayerStart
	w.player = obj.NewPlayer(start.X, start.Y, w.tuning.Player)
	if err := w.player.Rect().Check(); err != nil {
		return fmt.Errorf("sim: player start: %w", err)
	}
	w.entities.Add(w.player)
	return nil
}

func tileKind(kind string) obj.TileKind {
	switch kind {
	case levels.KindBreakable:
		return obj.TileBreakable
	case levels.KindQuestion:
		return obj.TileQuestion
	}
	return obj.TileSolid
}

func phase(p obj.Phase) ecs.System[*World] {
	return ecs.SystemFunc[*World](func(w *World) {
		w.ctx.Phase = p
		w.entities.ForEachUpdate(dt, w.ctx)
	})
}

// Tick advances the simulation by one fixed step using in as the sampled
// input. Ticks keep running after the session has ended; the frozen player
// no longer reacts but enemies and projectiles do.
func (w *World) Tick(in obj.Intents) {
	w.tick++
	w.ctx.Tick = w.tick
	w.ctx.Input = in
	w.systems.Update(w)
	w.prevFire = in.Fire
}

func (w *World) fireTrigger() {
	if w.ctx.Input.Fire && !w.prevFire {
		w.Fire()
	}
}

func (w *World) followCamera() {
	w.ctx.Camera = obj.CameraFor(w.player, w.tuning.World)
}

// Fire launches a projectile if the player can. It reports whether one was
// spawned; hitting the live cap is not an error.
func (w *World) Fire() bool {
	p := w.player
	if p.Frozen() || p.SlidingToGoal || p.Ability != obj.AbilityFire {
		return false
	}
	if w.LiveProjectiles() >= w.tuning.Projectile.MaxLive {
		return false
	}
	pr := obj.NewProjectile(p, w.tuning.Projectile)
	w.entities.Add(pr)
	w.ctx.Emit(obj.Event{Kind: obj.EventProjectileFired, X: pr.X, Y: pr.Y, Ability: p.Ability})
	return true
}

func (w *World) LiveProjectiles() int {
	n := 0
	w.entities.ForEach(func(_ ecs.Entity, o ecs.Object[*obj.Context]) bool {
		if _, ok := o.(*obj.Projectile); ok {
			n++
		}
		return true
	})
	return n
}

func (w *World) spawnPickups() {
	for _, req := range w.ctx.TakePickupRequests() {
		pk := obj.NewPickup(req, w.tuning.Pickup)
		if err := pk.Rect().Check(); err != nil {
			w.logger.Warn("dropping pickup spawn", "kind", req.Kind, "err", err)
			continue
		}
		w.entities.Add(pk)
		w.ctx.Emit(obj.Event{Kind: obj.EventPickupSpawned, X: pk.X, Y: pk.Y, Pickup: pk.Kind})
	}
}

func (w *World) dispatch() {
	for _, evt := range w.ctx.DrainEvents() {
		w.logger.Debug("event", "kind", evt.Kind, "tick", evt.Tick, "x", evt.X, "y", evt.Y)
		if w.observer != nil {
			w.observer.OnEvent(evt)
		}
		if !evt.Kind.Terminal() || w.outcome != OutcomeNone {
			continue
		}
		w.outcome = outcomeOf(evt.Kind)
		w.logger.Info("session ended", "outcome", w.outcome, "tick", w.tick)
		switch w.outcome {
		case OutcomeDied:
			w.session.OnPlayerDied()
		case OutcomeComplete:
			w.session.OnLevelComplete()
		case OutcomeFailed:
			w.session.OnLevelFailed()
		}
	}
}

func (w *World) compact() {
	w.entities.Compact()
}

// Camera returns the view for the current player position.
func (w *World) Camera() obj.Camera {
	return obj.CameraFor(w.player, w.tuning.World)
}

// Draw paints every entity through the camera, top of screen first.
func (w *World) Draw(r render.Renderer) {
	cam := w.Camera()
	w.entities.ForEachDraw(render.Offset{Target: r, X: cam.X})
}

func (w *World) Player() *obj.Player        { return w.player }
func (w *World) Level() *levels.Level       { return w.level }
func (w *World) Tuning() *prefabs.Tuning    { return w.tuning }
func (w *World) Outcome() Outcome           { return w.outcome }
func (w *World) Ticks() uint64              { return w.tick }
func (w *World) EntityCount() int           { return w.entities.Len() }
func (w *World) Tiles() *obj.CollisionWorld { return w.tiles }

// Enemies returns the live enemies in registry order.
func (w *World) Enemies() []*obj.Enemy {
	var out []*obj.Enemy
	w.ctx.Enemies(func(e *obj.Enemy) bool {
		out = append(out, e)
		return true
	})
	return out
}
