package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/session"
)

// blinkPeriod is the on/off period of flashing panel text.
const blinkPeriod = 300 * time.Millisecond

// Options configures the game model.
type Options struct {
	Runtime core.RuntimeConfig
	Scores  ScoreSource // Leaderboard source, may be nil
	Flash   *CueFlash   // The sink the session plays cues into, may be nil
}

// Model is the Bubble Tea model that drives one game session.
type Model struct {
	sess      *session.Session
	screen    *core.Screen
	keys      KeyMap
	flash     *CueFlash
	board     LeaderboardModel
	boardOpen bool
	config    core.RuntimeConfig
	start     time.Time
	now       func() time.Time
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(sess *session.Session, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   DefaultKeyMap(),
		flash:  opts.Flash,
		board:  NewLeaderboardModel(opts.Scores, cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		start:  time.Now(),
		now:    time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.board.SetSize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.sess.Tick(m.elapsedMs(time.Time(msg)))
		m.syncLeaderboard()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil
	}

	phase := m.sess.State().Phase
	if phase == session.PhaseLeaderboard && !key.Matches(msg, m.board.keys.Back) {
		// Mode switching and scrolling stay inside the table.
		updated, cmd := m.board.Update(msg)
		if b, ok := updated.(LeaderboardModel); ok {
			m.board = b
		}
		return m, cmd
	}

	if in, ok := m.keys.Intent(msg, phase); ok {
		m.sess.OnIntent(in)
		m.syncLeaderboard()
	}
	return m, nil
}

// syncLeaderboard reloads the table whenever the session enters the
// leaderboard phase.
func (m *Model) syncLeaderboard() {
	inBoard := m.sess.State().Phase == session.PhaseLeaderboard
	if inBoard && !m.boardOpen {
		m.board.Reload()
	}
	m.boardOpen = inBoard
}

func (m Model) elapsedMs(t time.Time) float64 {
	return float64(t.Sub(m.start)) / float64(time.Millisecond)
}

// frame collects the render input from the session.
func (m Model) frame() Frame {
	f := Frame{
		State:    m.sess.State(),
		TickRate: m.config.TickRate,
		Blink:    m.now().Sub(m.start)/blinkPeriod%2 == 0,
	}
	for i := range f.Lanes {
		f.Lanes[i], f.Visible[i] = m.sess.LaneSnapshot(core.LaneID(i))
	}
	if m.flash != nil {
		f.Cue, f.CueOn = m.flash.Current()
	}
	return f
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	Draw(m.screen, m.frame())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flapduel", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flapduel_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.sess.State().Phase == session.PhaseLeaderboard {
		return m.board.View()
	}

	Draw(m.screen, m.frame())
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the session.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
