package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/sim"
)

var flagCheckTicks int

var checkCmd = &cobra.Command{
	Use:   "check [level...]",
	Short: "Validate levels",
	Long: `Load each level, build a session from it and run it headless with no
input. Prints the content hash, entity counts, warnings and how the idle run
ended. With no arguments every embedded level is checked.

Examples:
  platformer check
  platformer check 1-2 --ticks 600
  platformer check ./levels/custom.json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagCheckTicks, "ticks", 300, "Idle ticks to simulate per level")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	names := args
	if len(names) == 0 {
		names = levels.Names()
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range names {
		if err := checkLevel(out, name, flagCheckTicks); err != nil {
			logger.Error("level failed", "level", name, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d level(s) failed", failed, len(names))
	}
	return nil
}

func checkLevel(out io.Writer, name string, ticks int) error {
	b, err := sim.LoadBundle(flagLevelsDir, flagPrefabsDir, name, newLogger())
	if err != nil {
		return err
	}
	world, err := sim.NewWorld(b.Level, b.Tuning, sim.Options{})
	if err != nil {
		return err
	}
	for range ticks {
		world.Tick(obj.Intents{})
	}
	var rec render.Recorder
	world.Draw(&rec)

	fmt.Fprintf(out, "%-12s %016x tiles=%d (solid after run %d) enemies=%d goals=%d sprites=%d outcome=%s\n",
		b.Level.Name, b.Level.Hash, len(b.Level.Tiles), world.Tiles().Len(), len(b.Level.Enemies),
		len(b.Level.Goals), len(rec.Sprites), world.Outcome())
	for _, w := range b.Level.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	return nil
}
