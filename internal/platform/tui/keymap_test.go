package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/session"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestIntentPlaying(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Intent
	}{
		{"space flaps lane 1", tea.KeyMsg{Type: tea.KeySpace}, core.Flap(core.Lane1)},
		{"w flaps lane 1", runeKey("w"), core.Flap(core.Lane1)},
		{"up flaps lane 2", tea.KeyMsg{Type: tea.KeyUp}, core.Flap(core.Lane2)},
		{"i flaps lane 2", runeKey("i"), core.Flap(core.Lane2)},
		{"r restarts", runeKey("r"), core.Select()},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, core.Select()},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.Cancel()},
		{"m opens the menu", runeKey("m"), core.ToggleMenu(core.Lane1)},
		{"a toggles both", runeKey("a"), core.ToggleAI(core.LaneBoth)},
		{"2 toggles lane 2", runeKey("2"), core.ToggleAI(core.Lane2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keys.Intent(tt.msg, session.PhasePlaying)
			if !ok {
				t.Fatalf("key %q not mapped", tt.msg.String())
			}
			if got != tt.want {
				t.Errorf("Intent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIntentTitle(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Intent
	}{
		{"up navigates", tea.KeyMsg{Type: tea.KeyUp}, core.NavigateUp()},
		{"j navigates down", runeKey("j"), core.NavigateDown()},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.Select()},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace}, core.Select()},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.Cancel()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keys.Intent(tt.msg, session.PhaseTitle)
			if !ok || got != tt.want {
				t.Errorf("Intent = %+v, %v, want %+v", got, ok, tt.want)
			}
		})
	}
}

func TestIntentUnmapped(t *testing.T) {
	keys := DefaultKeyMap()
	if _, ok := keys.Intent(runeKey("w"), session.PhaseTitle); ok {
		t.Error("w should do nothing on the title screen")
	}
	if _, ok := keys.Intent(runeKey("z"), session.PhasePlaying); ok {
		t.Error("z should do nothing while playing")
	}
}
