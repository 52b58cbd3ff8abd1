// platformer runs a side-scrolling level in a window.
//
// Usage:
//
//	platformer                   - Play the first level
//	platformer --level 1-2       - Play a specific level
//	platformer check [level...]  - Validate levels without opening a window
//
// Global flags:
//
//	--levels <dir>   - Directory searched for level JSON before the embedded set
//	--prefabs <dir>  - Directory searched for tuning YAML before the embedded set
//	--debug          - Debug logging and on-screen stats
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

var (
	flagLevelsDir  string
	flagPrefabsDir string
	flagDebug      bool

	flagLevel string
	flagWatch bool
	flagScale float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Run a platformer level",
	Long: `Play a level of the platformer.

Controls:
  A/D, Left/Right   - Walk
  Space/W/Up        - Jump
  J/X/Shift         - Throw a fireball (fire ability only)
  Esc               - Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", levels.DefaultDir, "Directory of level JSON overriding the embedded levels")
	rootCmd.PersistentFlags().StringVar(&flagPrefabsDir, "prefabs", prefabs.DefaultDir, "Directory of tuning YAML overriding the embedded specs")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and on-screen stats")

	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Level name or path (default: first embedded level)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level when its files change")
	rootCmd.Flags().Float64Var(&flagScale, "scale", 1.5, "Window scale factor")

	rootCmd.AddCommand(checkCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
