package session

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/flapduel/internal/core"
)

// Phase is the top-level screen the session is on.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseCountdown
	PhasePlaying
	PhaseLeaderboard
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseLeaderboard:
		return "leaderboard"
	default:
		return "unknown"
	}
}

// Mode decides which lanes are visible and which start under autopilot.
type Mode int

const (
	ModeSingle Mode = iota
	ModeTwoPlayer
	ModeAIvsAI
	ModePlayerVsAI
)

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeSingle, ModeTwoPlayer, ModeAIvsAI, ModePlayerVsAI}
}

// String returns the display title of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "SINGLE PLAYER"
	case ModeTwoPlayer:
		return "TWO PLAYER"
	case ModeAIvsAI:
		return "AI vs AI"
	case ModePlayerVsAI:
		return "PLAYER vs AI"
	default:
		return "UNKNOWN"
	}
}

// Key returns the stable identifier used for storage and the CLI.
func (m Mode) Key() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeTwoPlayer:
		return "two_player"
	case ModeAIvsAI:
		return "ai_vs_ai"
	case ModePlayerVsAI:
		return "player_vs_ai"
	default:
		return "unknown"
	}
}

// ParseMode accepts a mode key or its short CLI alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1p":
		return ModeSingle, nil
	case "two", "two_player", "2p":
		return ModeTwoPlayer, nil
	case "ai", "ai_vs_ai":
		return ModeAIvsAI, nil
	case "pvai", "player_vs_ai":
		return ModePlayerVsAI, nil
	default:
		return ModeSingle, fmt.Errorf("unknown mode %q (want single, two, ai or pvai)", s)
	}
}

// LaneActive reports whether the lane takes part in a round of this mode.
func (m Mode) LaneActive(lane core.LaneID) bool {
	switch lane {
	case core.Lane1:
		return true
	case core.Lane2:
		return m != ModeSingle
	default:
		return false
	}
}

// StartsWithAI reports whether the lane is autopilot-driven at round start.
func (m Mode) StartsWithAI(lane core.LaneID) bool {
	switch m {
	case ModeAIvsAI:
		return lane == core.Lane1 || lane == core.Lane2
	case ModePlayerVsAI:
		return lane == core.Lane2
	default:
		return false
	}
}

// MenuItem is one entry of the title menu.
type MenuItem struct {
	Label       string
	Mode        Mode
	Leaderboard bool
}

var menuItems = []MenuItem{
	{Label: ModeSingle.String(), Mode: ModeSingle},
	{Label: ModeTwoPlayer.String(), Mode: ModeTwoPlayer},
	{Label: ModeAIvsAI.String(), Mode: ModeAIvsAI},
	{Label: ModePlayerVsAI.String(), Mode: ModePlayerVsAI},
	{Label: "LEADERBOARD", Leaderboard: true},
}

// MenuItems returns the title menu entries.
func MenuItems() []MenuItem {
	return slices.Clone(menuItems)
}
