package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapduel/internal/platform/tui"
	"github.com/vovakirdan/flapduel/internal/session"
	"github.com/vovakirdan/flapduel/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best scores and recorded rounds",
	Long: `Browse recorded rounds per mode.

On a terminal this opens the interactive leaderboard. With --plain, or when
output is piped, the top rounds of each mode (or of the given mode) are
printed as text.

Examples:
  flapduel scores
  flapduel scores two --plain
  flapduel scores single --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Rounds to print per mode")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print text instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all rounds and the best score of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	modes := session.Modes()
	if len(args) == 1 {
		mode, err := session.ParseMode(args[0])
		if err != nil {
			fail("%v", err)
		}
		modes = []session.Mode{mode}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) == 0 {
			fail("--clear needs a mode")
		}
		if err := store.ClearMode(modes[0].Key()); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s\n", modes[0])
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunLeaderboard(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	stats, err := store.AllModeStats()
	if err != nil {
		fail("%v", err)
	}

	for _, mode := range modes {
		printModeScores(store, mode, stats[mode.Key()])
	}
}

func printModeScores(store *storage.Store, mode session.Mode, stats *storage.ModeStats) {
	best, err := store.BestScore(mode.Key())
	if err != nil {
		fail("%v", err)
	}
	rounds, err := store.TopRounds(mode.Key(), flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %s\n", "Rank", "Score", "Lane", "Pilot", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-8s  %s\n", "----", "-----", "----", "-----", "----")

	for i, r := range rounds {
		pilot := r.Pilot
		if pilot == "" {
			pilot = "human"
		}
		fmt.Printf("  %-4d  %-6d  P%-3d  %-8s  %s\n",
			i+1, r.Score, r.Lane, pilot, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d", best)
	if stats != nil {
		fmt.Printf("  Rounds: %d  Avg: %.1f", stats.Rounds, stats.AvgScore)
	}
	fmt.Println()
	fmt.Println()
}
