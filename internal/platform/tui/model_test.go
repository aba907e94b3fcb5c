package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 90, Seed: 1}
	sess, err := session.New(session.Options{Config: config.DefaultFlappyConfig(), Runtime: rt})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return NewModel(sess, Options{Runtime: rt, Flash: NewCueFlash(nil)})
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next
}

func TestModelStartsCountdown(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), "F L A P D U E L") {
		t.Fatal("model should open on the title screen")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.sess.State().Phase; got != session.PhaseCountdown {
		t.Fatalf("phase = %v, want countdown", got)
	}
	if !strings.Contains(m.View(), "3") {
		t.Error("countdown digit should be drawn")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.sess.State().Phase; got != session.PhaseTitle {
		t.Errorf("phase after esc = %v, want title", got)
	}
}

func TestModelLeaderboard(t *testing.T) {
	m := newTestModel(t)
	for range session.Modes() {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.sess.State().Phase; got != session.PhaseLeaderboard {
		t.Fatalf("phase = %v, want leaderboard", got)
	}
	if !strings.Contains(m.View(), "LEADERBOARD") {
		t.Error("leaderboard should be rendered")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.board.Mode() != session.ModeTwoPlayer {
		t.Errorf("board mode = %v, want two player", m.board.Mode())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.sess.State().Phase; got != session.PhaseTitle {
		t.Errorf("phase after esc = %v, want title", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if updated.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}
