package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/session"
)

// KeyMap defines the key bindings of the game. The same physical key may
// mean different things on menus and in play ("up" moves the menu cursor
// on the title screen and flaps lane 2 while playing).
type KeyMap struct {
	FlapLane1 key.Binding
	FlapLane2 key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Back      key.Binding
	Menu      key.Binding
	Restart   key.Binding
	AIBoth    key.Binding
	AILane1   key.Binding
	AILane2   key.Binding
	PrevMode  key.Binding
	NextMode  key.Binding
	Shot      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FlapLane1, k.FlapLane2, k.Restart, k.AIBoth, k.Menu, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FlapLane1, k.FlapLane2, k.Restart},
		{k.AIBoth, k.AILane1, k.AILane2},
		{k.Up, k.Down, k.Select, k.Back},
		{k.Menu, k.Shot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FlapLane1: key.NewBinding(
			key.WithKeys(" ", "w"),
			key.WithHelp("space/w", "flap left"),
		),
		FlapLane2: key.NewBinding(
			key.WithKeys("up", "i"),
			key.WithHelp("up/i", "flap right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "restart"),
		),
		AIBoth: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle AI"),
		),
		AILane1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "AI left"),
		),
		AILane2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "AI right"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/h", "prev mode"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/l", "next mode"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Intent translates a key message to a session intent for the given phase.
// ok is false when the key means nothing in that phase.
func (k KeyMap) Intent(msg tea.KeyMsg, phase session.Phase) (in core.Intent, ok bool) {
	switch phase {
	case session.PhaseTitle, session.PhaseLeaderboard:
		switch {
		case key.Matches(msg, k.Up):
			return core.NavigateUp(), true
		case key.Matches(msg, k.Down):
			return core.NavigateDown(), true
		case key.Matches(msg, k.Select), msg.String() == " ":
			return core.Select(), true
		case key.Matches(msg, k.Back):
			return core.Cancel(), true
		}

	case session.PhaseCountdown, session.PhasePlaying:
		switch {
		case key.Matches(msg, k.FlapLane1):
			return core.Flap(core.Lane1), true
		case key.Matches(msg, k.FlapLane2):
			return core.Flap(core.Lane2), true
		case key.Matches(msg, k.Restart):
			return core.Select(), true
		case key.Matches(msg, k.Back):
			return core.Cancel(), true
		case key.Matches(msg, k.Menu):
			return core.ToggleMenu(core.Lane1), true
		case key.Matches(msg, k.AIBoth):
			return core.ToggleAI(core.LaneBoth), true
		case key.Matches(msg, k.AILane1):
			return core.ToggleAI(core.Lane1), true
		case key.Matches(msg, k.AILane2):
			return core.ToggleAI(core.Lane2), true
		}
	}
	return core.Intent{}, false
}
