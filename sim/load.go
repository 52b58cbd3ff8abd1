package sim

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Bundle is everything a session needs before its first tick.
type Bundle struct {
	Tuning *prefabs.Tuning
	Level  *levels.Level
}

// LoadBundle reads the tuning and the raw level in parallel, then parses the
// level with the tuned tile size.
func LoadBundle(levelsDir, prefabsDir, name string, logger *log.Logger) (*Bundle, error) {
	var (
		b    Bundle
		data []byte
		g    errgroup.Group
	)
	g.Go(func() error {
		t, err := prefabs.LoadTuning(prefabsDir)
		if err != nil {
			return err
		}
		b.Tuning = t
		return nil
	})
	g.Go(func() error {
		raw, err := levels.Read(levelsDir, name)
		if err != nil {
			return err
		}
		data = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	l, err := levels.Parse(data, levels.Options{
		Name:     name,
		TileSize: b.Tuning.World.TileSize,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	b.Level = l
	return &b, nil
}
