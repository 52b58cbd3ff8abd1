package levels

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/milk9111/platformer/common"
)

const DefaultTileSize = 32

// Tile kinds.
const (
	KindSolid     = "solid"
	KindBreakable = "breakable"
	KindQuestion  = "question"
)

// Pickup kinds a question block can hold.
const (
	ContentsFlower   = "flower"
	ContentsMushroom = "mushroom"
)

var requiredFields = []string{"tiles", "enemies", "playerStart"}

// ConfigError reports level data the simulation cannot run with. It is raised
// by the loader, before a session starts.
type ConfigError struct {
	Level string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("levels: %s: %v", e.Level, e.Err)
	}
	return fmt.Sprintf("levels: %s: %s: %v", e.Level, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Tile struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	Kind     string  `json:"kind"`
	Sprite   string  `json:"sprite"`
	Contents string  `json:"contents,omitempty"`
	// Repeat lays the tile this many times to the right, one width apart.
	Repeat int `json:"repeat,omitempty"`
}

func (t Tile) Rect() common.Rect {
	return common.Rect{X: t.X, Y: t.Y, Width: t.W, Height: t.H}
}

type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type EnemySpawn struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Sprite       string  `json:"sprite,omitempty"`
	Direction    int     `json:"direction,omitempty"`
	PatrolBounds Bounds  `json:"patrolBounds"`
}

type Goal struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Fake bool    `json:"fake,omitempty"`
}

func (g Goal) Rect() common.Rect {
	return common.Rect{X: g.X, Y: g.Y, Width: g.W, Height: g.H}
}

// Level is validated level data. It is immutable once handed to a session.
type Level struct {
	Name        string       `json:"name"`
	Music       string       `json:"music,omitempty"`
	Height      float64      `json:"height,omitempty"`
	PlayerStart Point        `json:"playerStart"`
	Tiles       []Tile       `json:"tiles"`
	Enemies     []EnemySpawn `json:"enemies"`
	Goals       []Goal       `json:"goals"`

	// Hash identifies the source bytes.
	Hash uint64 `json:"-"`
	// Warnings lists problems that did not stop the load.
	Warnings []string `json:"-"`
}

type Options struct {
	Name     string
	TileSize float64
	Logger   *log.Logger
}

// Load reads and parses a level from dir or the embedded set.
func Load(dir, name string, opts Options) (*Level, error) {
	data, err := Read(dir, name)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = name
	}
	return Parse(data, opts)
}

// Parse decodes level JSON. Missing required fields are logged as warnings
// and replaced by empty values; malformed JSON and degenerate geometry are
// returned as *ConfigError.
func Parse(data []byte, opts Options) (*Level, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Level: opts.Name, Err: err}
	}

	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, &ConfigError{Level: opts.Name, Err: err}
	}
	if lvl.Name == "" {
		lvl.Name = opts.Name
	}
	lvl.Hash = xxhash.Sum64(data)

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			lvl.warn(logger, fmt.Sprintf("missing required field %q", field))
		}
	}
	if _, ok := raw["goals"]; !ok {
		lvl.warn(logger, "level has no goals and cannot be completed")
	}
	if lvl.Tiles == nil {
		lvl.Tiles = []Tile{}
	}
	if lvl.Enemies == nil {
		lvl.Enemies = []EnemySpawn{}
	}
	if lvl.Goals == nil {
		lvl.Goals = []Goal{}
	}

	if err := lvl.normalize(tileSize, logger); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) warn(logger *log.Logger, msg string) {
	l.Warnings = append(l.Warnings, msg)
	logger.Warn(msg, "level", l.Name)
}

func (l *Level) normalize(tileSize float64, logger *log.Logger) error {
	tiles := make([]Tile, 0, len(l.Tiles))
	for i, t := range l.Tiles {
		if t.W == 0 {
			t.W = tileSize
		}
		if t.H == 0 {
			t.H = tileSize
		}
		switch t.Kind {
		case "", KindSolid:
			t.Kind = KindSolid
		case KindBreakable, "breakable-block":
			t.Kind = KindBreakable
		case KindQuestion, "question-block":
			t.Kind = KindQuestion
			switch t.Contents {
			case "":
				t.Contents = ContentsFlower
			case ContentsFlower, ContentsMushroom:
			default:
				l.warn(logger, fmt.Sprintf("tiles[%d]: unknown contents %q, using %s", i, t.Contents, ContentsFlower))
				t.Contents = ContentsFlower
			}
		default:
			l.warn(logger, fmt.Sprintf("tiles[%d]: unknown kind %q, treating as solid", i, t.Kind))
			t.Kind = KindSolid
		}
		if err := t.Rect().Check(); err != nil {
			return &ConfigError{Level: l.Name, Field: fmt.Sprintf("tiles[%d]", i), Err: err}
		}

		n := max(t.Repeat, 1)
		t.Repeat = 0
		for k := 0; k < n; k++ {
			c := t
			c.X = t.X + float64(k)*t.W
			tiles = append(tiles, c)
		}
	}
	l.Tiles = tiles

	for i, e := range l.Enemies {
		if !finite(e.X, e.Y, e.PatrolBounds.Min, e.PatrolBounds.Max) {
			return &ConfigError{Level: l.Name, Field: fmt.Sprintf("enemies[%d]", i), Err: common.ErrDegenerateRect}
		}
		// patrols walk left unless told otherwise
		if e.Direction != 1 {
			l.Enemies[i].Direction = -1
		}
	}

	for i, g := range l.Goals {
		if err := g.Rect().Check(); err != nil {
			return &ConfigError{Level: l.Name, Field: fmt.Sprintf("goals[%d]", i), Err: err}
		}
	}

	if !finite(l.PlayerStart.X, l.PlayerStart.Y) {
		return &ConfigError{Level: l.Name, Field: "playerStart", Err: common.ErrDegenerateRect}
	}

	if l.Height <= 0 {
		for _, t := range l.Tiles {
			l.Height = math.Max(l.Height, t.Y+t.H)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
