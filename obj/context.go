package obj

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/prefabs"
)

// Phase is the slice of a tick an Update call belongs to. Every variant
// acts only in its own phases, so one pass per phase over the registry keeps
// the player ahead of enemy and projectile contact checks.
type Phase uint8

const (
	PhasePlayer Phase = iota
	PhaseEnemies
	PhaseProjectiles
	PhasePickups
	PhaseSettle
)

var phaseNames = [...]string{"player", "enemies", "projectiles", "pickups", "settle"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Intents is the input sampled once per tick.
type Intents struct {
	Left, Right, Jump, Fire bool
}

// MoveX returns -1, 0 or +1. Opposing directions cancel out.
func (in Intents) MoveX() float64 {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	}
	return 0
}

// PickupRequest asks the loop to spawn a pickup once the pickup phase ends.
type PickupRequest struct {
	Kind PickupKind
	// X, Y is the top-left of the block the pickup emerges from.
	X, Y, BlockWidth float64
}

// Context is the per-tick view handed to Update. It lives for one session
// and its per-tick fields are refreshed by the loop; entities must not keep
// pointers taken from it across ticks.
type Context struct {
	Phase    Phase
	Tick     uint64
	Input    Intents
	Tuning   *prefabs.Tuning
	Player   *Player
	Tiles    *CollisionWorld
	Entities *ecs.Registry[*Context]
	Camera   Camera
	// KillY is the depth below which the player has fallen out of the level.
	KillY float64

	events  ecs.EventQueue[Event]
	pickups []PickupRequest
}

func (c *Context) Emit(evt Event) {
	evt.Tick = c.Tick
	c.events.Push(evt)
}

// DrainEvents returns events raised since the last drain.
func (c *Context) DrainEvents() []Event {
	return c.events.Drain()
}

func (c *Context) RequestPickup(req PickupRequest) {
	c.pickups = append(c.pickups, req)
}

// TakePickupRequests returns and clears pending spawn requests.
func (c *Context) TakePickupRequests() []PickupRequest {
	out := c.pickups
	c.pickups = nil
	return out
}

// Enemies visits live enemies in registry order until fn returns false.
func (c *Context) Enemies(fn func(*Enemy) bool) {
	if c.Entities == nil {
		return
	}
	c.Entities.ForEach(func(_ ecs.Entity, o ecs.Object[*Context]) bool {
		e, ok := o.(*Enemy)
		if !ok || !e.Alive {
			return true
		}
		return fn(e)
	})
}

// GoalAt returns the first goal overlapping r.
func (c *Context) GoalAt(r common.Rect) *Goal {
	var found *Goal
	if c.Entities == nil {
		return nil
	}
	c.Entities.ForEach(func(_ ecs.Entity, o ecs.Object[*Context]) bool {
		g, ok := o.(*Goal)
		if ok && g.Rect().Intersects(r) {
			found = g
			return false
		}
		return true
	})
	return found
}
