package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sim"
)

// Frames to hold on the final pose before the next session starts.
const transitionFrames = 90

type transition struct {
	level  string
	frames int
	quit   bool
}

// Game adapts a sim.World to ebiten and owns the session lifecycle: it
// restarts after a death or failure and advances after a completion.
type Game struct {
	logger  *log.Logger
	screen  *Screen
	input   *sim.InputState
	watcher *prefabs.Watcher

	levelName string
	bundle    *sim.Bundle
	world     *sim.World
	next      *transition
	debug     bool
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	levelName := flagLevel
	if levelName == "" {
		levelName = firstLevel()
	}
	b, err := sim.LoadBundle(flagLevelsDir, flagPrefabsDir, levelName, logger)
	if err != nil {
		return err
	}

	screen, err := NewScreen(logger)
	if err != nil {
		return err
	}
	g := &Game{
		logger:    logger,
		screen:    screen,
		input:     &sim.InputState{},
		levelName: levelName,
		debug:     flagDebug,
	}
	if err := g.start(b); err != nil {
		return err
	}

	if flagWatch {
		w, err := prefabs.NewWatcher(prefabs.DefaultQuiet, flagLevelsDir, flagPrefabsDir)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	world := b.Tuning.World
	if world.TPS > 0 {
		ebiten.SetTPS(world.TPS)
	}
	ebiten.SetWindowSize(int(world.ViewportWidth*flagScale), int(world.ViewportHeight*flagScale))
	ebiten.SetWindowTitle("platformer")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// start replaces the running session. It is only called between ticks.
func (g *Game) start(b *sim.Bundle) error {
	world, err := sim.NewWorld(b.Level, b.Tuning, sim.Options{
		Logger:   g.logger,
		Session:  g,
		Observer: sim.ObserverFunc(g.onEvent),
	})
	if err != nil {
		return err
	}
	g.bundle = b
	g.world = world
	g.next = nil
	g.input.Reset()
	return nil
}

func (g *Game) OnPlayerDied() {
	g.next = &transition{level: g.levelName, frames: transitionFrames}
}

func (g *Game) OnLevelFailed() {
	g.next = &transition{level: g.levelName, frames: transitionFrames}
}

func (g *Game) OnLevelComplete() {
	next := nextLevel(strings.TrimSuffix(filepath.Base(g.levelName), ".json"))
	if next == "" {
		g.logger.Info("all levels complete")
		g.next = &transition{frames: transitionFrames, quit: true}
		return
	}
	g.next = &transition{level: next, frames: transitionFrames}
}

func (g *Game) onEvent(evt obj.Event) {
	switch evt.Kind {
	case obj.EventAbilityChanged:
		g.logger.Debug("ability", "now", evt.Ability)
	case obj.EventPickupSpawned:
		g.logger.Debug("pickup spawned", "kind", evt.Pickup)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollWatcher()

	pollDevices(g.input)
	g.world.Tick(g.input.Snapshot())

	if g.next == nil {
		return nil
	}
	g.next.frames--
	if g.next.frames > 0 {
		return nil
	}
	if g.next.quit {
		return ebiten.Termination
	}
	return g.load(g.next.level)
}

func (g *Game) load(name string) error {
	b, err := sim.LoadBundle(flagLevelsDir, flagPrefabsDir, name, g.logger)
	if err != nil {
		return err
	}
	g.levelName = name
	return g.start(b)
}

// pollWatcher restarts the session when the current level or a tuning file
// changes on disk. Saves that leave the level bytes unchanged are ignored.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors():
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	b, err := sim.LoadBundle(flagLevelsDir, flagPrefabsDir, g.levelName, g.logger)
	if err != nil {
		g.logger.Warn("reload failed, keeping current session", "paths", change.Paths, "err", err)
		return
	}
	if !change.Specs && b.Level.Hash == g.bundle.Level.Hash {
		return
	}
	if err := g.start(b); err != nil {
		g.logger.Warn("reload failed, keeping current session", "paths", change.Paths, "err", err)
		return
	}
	g.logger.Info("reloaded", "paths", change.Paths, "level", b.Level.Name, "hash", fmt.Sprintf("%016x", b.Level.Hash))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Skyblue)
	g.screen.Begin(screen)
	g.world.Draw(g.screen)

	if g.debug {
		p := g.world.Player()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"TPS: %.1f  level: %s  tick: %d  entities: %d\nability: %s  x: %.1f  y: %.1f  state: %s",
			ebiten.ActualTPS(), g.world.Level().Name, g.world.Ticks(), g.world.EntityCount(),
			p.Ability, p.X, p.Y, g.world.Outcome(),
		))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	world := g.bundle.Tuning.World
	return int(world.ViewportWidth), int(world.ViewportHeight)
}
