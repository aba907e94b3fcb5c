// Package tui provides the Bubble Tea front end of the game.
// It handles the terminal UI loop, key mapping, lane rendering, the
// leaderboard screen and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapduel/internal/core"
)

// TickMsg is sent to trigger a session tick.
type TickMsg time.Time

// tickInterval is the wall-clock gap between two TickMsgs. Rates that are
// not positive fall back to the default simulation rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next TickMsg. The session gates frames on its own,
// so a late tick only delays rendering.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
