package prefabs

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](dir, filename string) (T, error) {
	var zero T
	data, err := Load(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name             string         `yaml:"name"`
	Width            float64        `yaml:"width"`
	Height           float64        `yaml:"height"`
	MoveSpeed        float64        `yaml:"move_speed"`
	JumpSpeed        float64        `yaml:"jump_speed"`
	InvincibleFrames int            `yaml:"invincible_frames"`
	StompBounce      float64        `yaml:"stomp_bounce"`
	StompTolerance   float64        `yaml:"stomp_tolerance"`
	SlideSpeed       float64        `yaml:"slide_speed"`
	Sprites          AbilitySprites `yaml:"sprites"`
}

type AbilitySprites struct {
	Small string `yaml:"small"`
	Big   string `yaml:"big"`
	Fire  string `yaml:"fire"`
}

type EnemySpec struct {
	Name        string  `yaml:"name"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MoveSpeed   float64 `yaml:"move_speed"`
	ProbeOffset float64 `yaml:"probe_offset"`
	ProbeSize   float64 `yaml:"probe_size"`
	Sprite      string  `yaml:"sprite"`
	DeadSprite  string  `yaml:"dead_sprite"`
}

type ProjectileSpec struct {
	Name         string  `yaml:"name"`
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	MaxLive      int     `yaml:"max_live"`
	WindowMargin float64 `yaml:"window_margin"`
	Sprite       string  `yaml:"sprite"`
}

type PickupSpec struct {
	Name      string            `yaml:"name"`
	Width     float64           `yaml:"width"`
	Height    float64           `yaml:"height"`
	RiseSpeed float64           `yaml:"rise_speed"`
	Sprites   map[string]string `yaml:"sprites"`
}

type CameraSpec struct {
	// Mode is "follow" (centered, clamped at 0) or "offset" (fixed lead).
	Mode   string  `yaml:"mode"`
	Offset float64 `yaml:"offset"`
}

type WorldSpec struct {
	Name           string     `yaml:"name"`
	Gravity        float64    `yaml:"gravity"`
	TileSize       float64    `yaml:"tile_size"`
	ViewportWidth  float64    `yaml:"viewport_width"`
	ViewportHeight float64    `yaml:"viewport_height"`
	FallMargin     float64    `yaml:"fall_margin"`
	TPS            int        `yaml:"tps"`
	Camera         CameraSpec `yaml:"camera"`
	EmptyBlock     string     `yaml:"empty_block_sprite"`
	GoalSprite     string     `yaml:"goal_sprite"`
}

// Tuning aggregates every spec the simulation reads.
type Tuning struct {
	Player     PlayerSpec
	Enemy      EnemySpec
	Projectile ProjectileSpec
	Pickup     PickupSpec
	World      WorldSpec
}

// LoadTuning loads and validates all specs, reading overrides from dir.
func LoadTuning(dir string) (*Tuning, error) {
	var (
		t   Tuning
		err error
	)
	if t.Player, err = LoadSpec[PlayerSpec](dir, "player.yaml"); err != nil {
		return nil, err
	}
	if t.Enemy, err = LoadSpec[EnemySpec](dir, "enemy.yaml"); err != nil {
		return nil, err
	}
	if t.Projectile, err = LoadSpec[ProjectileSpec](dir, "projectile.yaml"); err != nil {
		return nil, err
	}
	if t.Pickup, err = LoadSpec[PickupSpec](dir, "pickup.yaml"); err != nil {
		return nil, err
	}
	if t.World, err = LoadSpec[WorldSpec](dir, "world.yaml"); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate rejects sizes and rates that would feed NaN or degenerate boxes
// into collision math.
func (t *Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"player.width", t.Player.Width},
		{"player.height", t.Player.Height},
		{"player.slide_speed", t.Player.SlideSpeed},
		{"enemy.width", t.Enemy.Width},
		{"enemy.height", t.Enemy.Height},
		{"enemy.probe_size", t.Enemy.ProbeSize},
		{"projectile.radius", t.Projectile.Radius},
		{"pickup.width", t.Pickup.Width},
		{"pickup.height", t.Pickup.Height},
		{"pickup.rise_speed", t.Pickup.RiseSpeed},
		{"world.tile_size", t.World.TileSize},
		{"world.viewport_width", t.World.ViewportWidth},
		{"world.viewport_height", t.World.ViewportHeight},
	}
	for _, p := range positive {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSpec, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"player.move_speed", t.Player.MoveSpeed},
		{"player.jump_speed", t.Player.JumpSpeed},
		{"player.stomp_bounce", t.Player.StompBounce},
		{"player.stomp_tolerance", t.Player.StompTolerance},
		{"player.invincible_frames", float64(t.Player.InvincibleFrames)},
		{"enemy.move_speed", t.Enemy.MoveSpeed},
		{"enemy.probe_offset", t.Enemy.ProbeOffset},
		{"projectile.speed", t.Projectile.Speed},
		{"projectile.max_live", float64(t.Projectile.MaxLive)},
		{"projectile.window_margin", t.Projectile.WindowMargin},
		{"world.gravity", t.World.Gravity},
		{"world.fall_margin", t.World.FallMargin},
		{"world.camera.offset", t.World.Camera.Offset},
	}
	for _, p := range nonNegative {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidSpec, p.name, p.v)
		}
	}

	switch t.World.Camera.Mode {
	case "", "follow", "offset":
	default:
		return fmt.Errorf("%w: world.camera.mode %q", ErrInvalidSpec, t.World.Camera.Mode)
	}
	if t.World.TPS < 0 {
		return fmt.Errorf("%w: world.tps must not be negative", ErrInvalidSpec)
	}
	return nil
}
