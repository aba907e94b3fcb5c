// Package session implements the top-level state machine of the game:
// title menu, countdown, two-lane play and the leaderboard view.
//
// A Session owns both lanes and is driven by a single goroutine through
// OnIntent and Tick. It is not safe for concurrent use.
package session

import (
	"fmt"
	"io"
	"maps"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/games/flappy"
	"github.com/vovakirdan/flapduel/internal/registry"
)

// BestScoreStore persists the best floored score per mode, keyed by Mode.Key.
// Save must never lower a stored score; modes missing from the map are left
// untouched.
type BestScoreStore interface {
	Load() (map[string]int, error)
	Save(best map[string]int) error
}

// RoundResult describes one finished lane round.
type RoundResult struct {
	ID       uuid.UUID
	Mode     Mode
	Lane     core.LaneID
	Score    int
	Pilot    string // Empty for human play
	EndedAt  time.Time
	Duration time.Duration
}

// RoundRecorder receives every finished lane round.
type RoundRecorder interface {
	RecordRound(r RoundResult) error
}

// RoundRecorderFunc adapts a plain function to RoundRecorder.
type RoundRecorderFunc func(r RoundResult) error

// RecordRound calls f(r).
func (f RoundRecorderFunc) RecordRound(r RoundResult) error {
	return f(r)
}

// Options configures a Session. Only Config is required.
type Options struct {
	Config   config.FlappyConfig
	Runtime  core.RuntimeConfig
	Store    BestScoreStore
	Recorder RoundRecorder
	Sound    core.SoundSink
	Logger   *log.Logger

	// NewRand returns the randomness source of a lane. By default both lanes
	// get a math/rand source seeded with Runtime.Seed, so they see the same
	// pipe layout.
	NewRand func(lane core.LaneID) core.Rand

	// OnMilestone fires when a lane's floored score reaches a milestone.
	OnMilestone func(lane core.LaneID, score int)
}

// State is the read-only session summary for the presentation layer.
type State struct {
	Phase      Phase
	Mode       Mode
	MenuIndex  int
	Countdown  int // Meaningful in PhaseCountdown; 0 shows "GO!"
	Best       map[Mode]int
	AI         [core.LaneCount]bool
	NewBest    [core.LaneCount]bool // Lane beat the stored best this round
	CanRestart bool                 // Restart gate is open
}

// Session is the title -> countdown -> playing -> title state machine.
type Session struct {
	cfg      config.FlappyConfig
	rt       core.RuntimeConfig
	store    BestScoreStore
	recorder RoundRecorder
	sound    core.SoundSink
	log      *log.Logger

	onMilestone func(core.LaneID, int)

	lanes [core.LaneCount]*flappy.Lane
	rngs  [core.LaneCount]core.Rand
	ai    [core.LaneCount]bool

	phase     Phase
	mode      Mode
	menuIndex int

	countdown     int
	countdownNext float64
	goAt          float64

	best    map[Mode]int
	newBest [core.LaneCount]bool

	now        float64
	lastFrame  float64
	ticked     bool
	roundStart float64
	wallStart  time.Time
}

// New creates a session on the title screen and loads best scores.
// A failing store is logged and treated as empty.
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !registry.Exists(cfg.Autopilot.Policy) {
		return nil, fmt.Errorf("session: unknown autopilot policy %q", cfg.Autopilot.Policy)
	}

	s := &Session{
		cfg:         cfg,
		rt:          opts.Runtime,
		store:       opts.Store,
		recorder:    opts.Recorder,
		sound:       opts.Sound,
		log:         opts.Logger,
		onMilestone: opts.OnMilestone,
		best:        make(map[Mode]int),
	}
	if s.sound == nil {
		s.sound = core.NopSound
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}

	newRand := opts.NewRand
	if newRand == nil {
		seed := s.rt.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		newRand = func(core.LaneID) core.Rand {
			return rand.New(rand.NewSource(seed))
		}
	}

	var shared *flappy.Physics
	if cfg.Physics.Shared {
		shared = flappy.NewPhysics(cfg)
	}
	for i := range s.lanes {
		id := core.LaneID(i)
		phys := shared
		if phys == nil {
			phys = flappy.NewPhysics(cfg)
		}
		s.rngs[i] = newRand(id)
		lane, err := flappy.NewLane(id, cfg, phys, s.rngs[i])
		if err != nil {
			return nil, err
		}
		s.lanes[i] = lane
	}

	s.loadBest()
	return s, nil
}

func (s *Session) loadBest() {
	if s.store == nil {
		return
	}
	stored, err := s.store.Load()
	if err != nil {
		s.log.Warn("could not load best scores", "err", err)
		return
	}
	for _, m := range Modes() {
		if v, ok := stored[m.Key()]; ok {
			s.best[m] = v
		}
	}
}

// saveBest writes the best score of one mode. Other modes are left to
// whoever else shares the store.
func (s *Session) saveBest(mode Mode) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(map[string]int{mode.Key(): s.best[mode]}); err != nil {
		s.log.Warn("could not save best scores", "err", err)
	}
}

// play emits a sound cue; failures never reach game state.
func (s *Session) play(cue core.Cue) {
	if err := s.sound.Play(cue); err != nil {
		s.log.Warn("sound cue failed", "cue", cue, "err", err)
	}
}

// OnIntent applies a decoded input. Intents that make no sense in the
// current phase are ignored.
func (s *Session) OnIntent(in core.Intent) {
	switch s.phase {
	case PhaseTitle:
		s.onTitleIntent(in)
	case PhaseLeaderboard:
		if in.Kind == core.IntentCancel || in.Kind == core.IntentSelect || in.Kind == core.IntentToggleMenu {
			s.phase = PhaseTitle
		}
	case PhaseCountdown:
		switch in.Kind {
		case core.IntentCancel, core.IntentToggleMenu:
			s.ReturnToMenu()
		case core.IntentToggleAI:
			s.toggleAI(in.Lane)
		}
	case PhasePlaying:
		s.onPlayingIntent(in)
	}
}

func (s *Session) onTitleIntent(in core.Intent) {
	n := len(menuItems)
	switch in.Kind {
	case core.IntentNavigateUp:
		s.menuIndex = (s.menuIndex - 1 + n) % n
		s.play(core.CueWing)
	case core.IntentNavigateDown:
		s.menuIndex = (s.menuIndex + 1) % n
		s.play(core.CueWing)
	case core.IntentSelect:
		item := menuItems[s.menuIndex]
		if item.Leaderboard {
			s.phase = PhaseLeaderboard
			return
		}
		s.StartCountdown(item.Mode)
	}
}

func (s *Session) onPlayingIntent(in core.Intent) {
	switch in.Kind {
	case core.IntentFlap:
		if !in.Lane.Valid() || !s.mode.LaneActive(in.Lane) || s.ai[in.Lane] {
			return
		}
		if s.lanes[in.Lane].Flap() {
			s.play(core.CueWing)
		}
	case core.IntentSelect:
		s.Restart()
	case core.IntentCancel, core.IntentToggleMenu:
		s.ReturnToMenu()
	case core.IntentToggleAI:
		s.toggleAI(in.Lane)
	}
}

// StartCountdown leaves the title for the countdown of the given mode.
func (s *Session) StartCountdown(mode Mode) {
	s.mode = mode
	s.phase = PhaseCountdown
	s.countdown = s.cfg.Session.CountdownFrom
	s.countdownNext = s.now + s.cfg.Session.CountdownStepMs
	s.goAt = math.Inf(1)
	for i := range s.ai {
		s.ai[i] = mode.StartsWithAI(core.LaneID(i))
	}
	s.log.Info("countdown", "mode", mode.Key())
	s.play(core.CueWing)
}

// Tick advances the session to wall-clock time nowMs. It returns false
// without doing anything when called before the frame interval elapsed.
func (s *Session) Tick(nowMs float64) bool {
	interval := s.rt.FrameIntervalMs()
	if s.ticked {
		elapsed := nowMs - s.lastFrame
		if elapsed < interval {
			return false
		}
		s.lastFrame = nowMs - math.Mod(elapsed, interval)
	} else {
		s.ticked = true
		s.lastFrame = nowMs
	}
	s.now = nowMs

	switch s.phase {
	case PhaseCountdown:
		s.tickCountdown()
	case PhasePlaying:
		s.tickPlaying()
	}
	return true
}

func (s *Session) tickCountdown() {
	if s.countdown > 0 && s.now >= s.countdownNext {
		s.countdown--
		s.countdownNext += s.cfg.Session.CountdownStepMs
		if s.countdown > 0 {
			s.play(core.CueWing)
		} else {
			s.play(core.CuePoint)
			s.goAt = s.now + s.cfg.Session.GoDelayMs
		}
		return
	}
	if s.countdown == 0 && s.now >= s.goAt {
		s.phase = PhasePlaying
		s.startRound()
	}
}

// startRound resets physics, events and both lanes, and arms spawn timers
// for the lanes the mode uses.
func (s *Session) startRound() {
	s.roundStart = s.now
	s.wallStart = time.Now()
	s.newBest = [core.LaneCount]bool{}

	for i, lane := range s.lanes {
		id := core.LaneID(i)
		lane.SetPilot(s.pilotFor(id))
		lane.Reset(s.now)
		if !s.mode.LaneActive(id) {
			lane.Disarm()
		}
	}
	s.log.Info("round started", "mode", s.mode.Key())
}

func (s *Session) pilotFor(lane core.LaneID) registry.Pilot {
	if !s.ai[lane] {
		return nil
	}
	p, err := registry.Create(s.cfg.Autopilot.Policy, s.rngs[lane], s.cfg.Autopilot)
	if err != nil {
		// Policy existence is checked in New.
		panic(err)
	}
	return p
}

func (s *Session) tickPlaying() {
	for i, lane := range s.lanes {
		id := core.LaneID(i)
		if !s.mode.LaneActive(id) {
			continue
		}
		res := lane.Step(s.now)
		for _, cue := range res.Cues {
			s.play(cue)
		}
		if res.Activated != flappy.EventNone {
			s.log.Debug("event started", "lane", id, "event", res.Activated)
		}
		if res.Expired != flappy.EventNone {
			s.log.Debug("event ended", "lane", id, "event", res.Expired)
		}
		if res.Difficulty != 0 {
			s.log.Debug("difficulty raised", "lane", id, "milestone", res.Difficulty)
		}
		for _, m := range res.Milestones {
			s.log.Info("milestone", "lane", id, "score", m)
			if s.onMilestone != nil {
				s.onMilestone(id, m)
			}
		}
		if res.RoundEnded {
			s.endRound(id)
		}
	}
}

// endRound runs once per lane per round, on its first game-over frame.
func (s *Session) endRound(id core.LaneID) {
	lane := s.lanes[id]
	score := int(math.Floor(lane.Score()))
	pilot := ""
	if p := lane.Pilot(); p != nil {
		pilot = p.Name()
	}
	s.log.Info("round ended", "lane", id, "mode", s.mode.Key(), "score", score, "pilot", pilot)

	if score > s.best[s.mode] {
		s.best[s.mode] = score
		s.newBest[id] = true
		s.log.Info("new best score", "mode", s.mode.Key(), "score", score)
		s.saveBest(s.mode)
	}

	if s.recorder != nil {
		r := RoundResult{
			ID:       uuid.New(),
			Mode:     s.mode,
			Lane:     id,
			Score:    score,
			Pilot:    pilot,
			EndedAt:  time.Now(),
			Duration: time.Duration((s.now - s.roundStart) * float64(time.Millisecond)),
		}
		if err := s.recorder.RecordRound(r); err != nil {
			s.log.Warn("could not record round", "lane", id, "err", err)
		}
	}
}

// restartAllowed is the restart gate: the first lane alone in single
// player, both lanes otherwise.
func (s *Session) restartAllowed() bool {
	if s.phase != PhasePlaying {
		return false
	}
	for i, lane := range s.lanes {
		if !s.mode.LaneActive(core.LaneID(i)) {
			continue
		}
		if !lane.GameOver() || !lane.CanRestart() {
			return false
		}
	}
	return true
}

// Restart begins a new round of the current mode if the restart gate is
// open, and reports whether it did.
func (s *Session) Restart() bool {
	if !s.restartAllowed() {
		return false
	}
	s.startRound()
	return true
}

// ReturnToMenu cancels both spawn timers, resets the lanes and goes back to
// the title screen.
func (s *Session) ReturnToMenu() {
	for _, lane := range s.lanes {
		lane.SetPilot(nil)
		lane.Reset(s.now)
		lane.Disarm()
	}
	s.phase = PhaseTitle
}

// toggleAI flips autopilot for one lane or both. Lanes the mode does not
// use are left alone.
func (s *Session) toggleAI(target core.LaneID) {
	for i := range s.lanes {
		id := core.LaneID(i)
		if target != core.LaneBoth && target != id {
			continue
		}
		if !s.mode.LaneActive(id) {
			continue
		}
		s.ai[id] = !s.ai[id]
		if s.phase == PhasePlaying {
			s.lanes[id].SetPilot(s.pilotFor(id))
		}
		s.log.Info("autopilot toggled", "lane", id, "enabled", s.ai[id])
	}
}

// LaneSnapshot returns the render input of a lane. It reports false for
// lanes the current mode does not show, and outside of play.
func (s *Session) LaneSnapshot(lane core.LaneID) (flappy.Snapshot, bool) {
	if s.phase != PhasePlaying || !lane.Valid() || !s.mode.LaneActive(lane) {
		return flappy.Snapshot{}, false
	}
	return s.lanes[lane].Snapshot(), true
}

// State returns the session summary.
func (s *Session) State() State {
	return State{
		Phase:      s.phase,
		Mode:       s.mode,
		MenuIndex:  s.menuIndex,
		Countdown:  s.countdown,
		Best:       maps.Clone(s.best),
		AI:         s.ai,
		NewBest:    s.newBest,
		CanRestart: s.restartAllowed(),
	}
}
