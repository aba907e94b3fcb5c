package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/platform/tui"
	"github.com/vovakirdan/flapduel/internal/session"
	"github.com/vovakirdan/flapduel/internal/storage"
)

var (
	flagMode    string
	flagLogFile string
	flagBell    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play FlapDuel",
	Long: `Start the game on the title menu, or directly in a mode with --mode.

Controls:
  Space/W    - Flap left lane
  Up/I       - Flap right lane
  A          - Toggle autopilot on both lanes (1/2 for one lane)
  R/Enter    - Restart (after every lane is game over)
  M/Esc      - Back to the title menu
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Modes:
  single - One lane
  two    - Two players on one keyboard
  ai     - Autopilot against autopilot
  pvai   - Left lane human, right lane autopilot

Difficulty options:
  normal  - Advanced defaults
  classic - Slower spawn floor, reflex autopilot
  fixed   - No difficulty progression

Examples:
  flapduel play
  flapduel play --mode two
  flapduel play --mode pvai --difficulty classic
  flapduel play --config ./my-flappy.yaml --log flapduel.log -v`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Start a mode directly: single, two, ai, pvai")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file (default: ~/.flapduel/flapduel.log)")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on hits")
}

func runPlay(_ *cobra.Command, _ []string) {
	var (
		startMode session.Mode
		direct    bool
	)
	if flagMode != "" {
		mode, err := session.ParseMode(flagMode)
		if err != nil {
			fail("%v", err)
		}
		startMode, direct = mode, true
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fail("%v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "flapduel")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var bell func()
	if flagBell {
		bell = func() { fmt.Fprint(os.Stdout, "\a") }
	}
	flash := tui.NewCueFlash(bell)

	opts := session.Options{
		Config:  gameCfg,
		Runtime: rt,
		Sound:   flash,
		Logger:  logger,
	}
	uiOpts := tui.Options{Runtime: rt, Flash: flash}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		opts.Store = store
		opts.Recorder = store
		uiOpts.Scores = store
	}

	sess, err := session.New(opts)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fail("%v", err)
	}
	if direct {
		sess.StartCountdown(startMode)
	}

	logger.Info("game started", "mode", flagMode, "fps", rt.TickRate, "seed", rt.Seed)
	runErr := tui.Run(sess, uiOpts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// openLogFile opens the log file for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".flapduel", "flapduel.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
