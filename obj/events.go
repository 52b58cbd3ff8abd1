package obj

import "fmt"

type EventKind uint8

const (
	EventPlayerDied EventKind = iota + 1
	EventLevelComplete
	EventLevelFailed
	EventPlayerDamaged
	EventAbilityChanged
	EventJump
	EventEnemyStomped
	EventEnemyShot
	EventBlockHit
	EventBlockBroken
	EventPickupSpawned
	EventPickupCollected
	EventProjectileFired
	EventGoalTouched
)

var eventNames = map[EventKind]string{
	EventPlayerDied:      "player_died",
	EventLevelComplete:   "level_complete",
	EventLevelFailed:     "level_failed",
	EventPlayerDamaged:   "player_damaged",
	EventAbilityChanged:  "ability_changed",
	EventJump:            "jump",
	EventEnemyStomped:    "enemy_stomped",
	EventEnemyShot:       "enemy_shot",
	EventBlockHit:        "block_hit",
	EventBlockBroken:     "block_broken",
	EventPickupSpawned:   "pickup_spawned",
	EventPickupCollected: "pickup_collected",
	EventProjectileFired: "projectile_fired",
	EventGoalTouched:     "goal_touched",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Terminal reports whether the event ends the player's run.
func (k EventKind) Terminal() bool {
	return k == EventPlayerDied || k == EventLevelComplete || k == EventLevelFailed
}

// Event is a gameplay transition raised during a tick. Sound and animation
// hooks outside the simulation observe these.
type Event struct {
	Kind    EventKind
	Tick    uint64
	X, Y    float64
	Ability Ability
	Pickup  PickupKind
}
