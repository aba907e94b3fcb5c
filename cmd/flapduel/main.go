// flapduel is a two-lane flappy game for the terminal.
//
// Usage:
//
//	flapduel play            - Open the title menu
//	flapduel play --mode two - Skip the menu and start a mode
//	flapduel scores          - Browse recorded rounds
//	flapduel modes           - List game modes
//	flapduel pilots          - List autopilot policies
//	flapduel serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 90)
//	--seed <value>        - Set RNG seed for reproducible pipe layouts
//	--db <path>           - Set database path (default: ~/.flapduel/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - Difficulty preset: normal, classic, fixed
//	--verbose             - Log debug output
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapduel",
	Short: "FlapDuel - two-lane flappy game in your terminal",
	Long: `FlapDuel is a terminal flappy game with two side-by-side lanes.
Play alone, against a friend on the same keyboard, or against an autopilot.

Available commands:
  play     - Start the game
  scores   - View recorded rounds and best scores
  modes    - List game modes
  pilots   - List autopilot policies
  serve    - Start SSH server for remote play

Examples:
  flapduel play
  flapduel play --mode pvai --difficulty classic
  flapduel scores
  flapduel serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapduel/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: normal, classic, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGameConfig resolves the game config from --config and --difficulty.
func loadGameConfig() (config.FlappyConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	return cfg, nil
}

// newLogger creates the process logger. Output goes to w so that the
// interactive game can send it to a file instead of the alt screen.
func newLogger(w *os.File, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints the error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
