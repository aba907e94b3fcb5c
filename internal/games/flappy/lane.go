// Package flappy implements one lane of the two-lane flying game.
// The avatar must pass through gaps in scrolling pipe pairs while gravity
// pulls it down; timed random events and a score-driven difficulty curve
// reshape the lane's physics as the round goes on.
package flappy

import (
	"math"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/registry"
)

// LaneState is the phase of a lane within one round.
type LaneState int

const (
	LaneAlive           LaneState = iota // Flying and scoring
	LaneDeathAnimating                   // Falling with a single bounce
	LaneGameOverWaiting                  // Panel shown, restart gate counting down
)

// String returns a human-readable name for the state.
func (s LaneState) String() string {
	switch s {
	case LaneAlive:
		return "alive"
	case LaneDeathAnimating:
		return "dying"
	case LaneGameOverWaiting:
		return "game over"
	default:
		return "unknown"
	}
}

// Panel is the game-over overlay that springs into place.
type Panel struct {
	Y        float64
	TargetY  float64
	Velocity float64
	Settled  bool
}

// Reset puts the panel below the field, aimed slightly above center.
func (p *Panel) Reset(fieldHeight float64, cfg config.PanelConfig) {
	*p = Panel{
		Y:       fieldHeight,
		TargetY: fieldHeight/2 - cfg.TargetOffset,
	}
}

// Step advances the damped spring by one frame.
func (p *Panel) Step(cfg config.PanelConfig) {
	if p.Settled {
		return
	}
	force := (p.TargetY - p.Y) * cfg.Spring
	p.Velocity = (p.Velocity + force) * cfg.Damping
	p.Y += p.Velocity

	if math.Abs(p.TargetY-p.Y) < cfg.SettleDistance && math.Abs(p.Velocity) < cfg.SettleVelocity {
		p.Y = p.TargetY
		p.Velocity = 0
		p.Settled = true
	}
}

// StepResult reports what happened during one lane frame.
type StepResult struct {
	Cues       []core.Cue
	RoundEnded bool  // First frame in LaneGameOverWaiting
	Milestones []int // Floored scores that fired the milestone hook
	Activated  EventKind
	Expired    EventKind
	Difficulty int // Difficulty milestone applied this frame, 0 if none
}

// Lane owns one lane's full mutable state.
type Lane struct {
	id     core.LaneID
	cfg    config.FlappyConfig
	phys   *Physics
	curve  *config.Curve
	pipes  *PipeManager
	events *EventEngine
	pilot  registry.Pilot
	views  []core.ObstacleView

	avatar Avatar
	score  float64

	gameOver         bool
	inDeathAnimation bool
	deathTimer       int
	hasBounced       bool
	screenTimer      int
	canRestart       bool
	roundEnded       bool
	panel            Panel

	lastDifficultyUpdate int
	milestones           map[int]bool

	frame     int // Logical animation frame
	flapTicks int
	flapping  bool

	lastDecisionMs float64

	spawnArmed    bool
	spawnInterval float64
	nextSpawnAt   float64
	now           float64
}

// NewLane creates a lane. phys may be shared with the other lane.
// The lane starts idle; call Reset to begin a round.
func NewLane(id core.LaneID, cfg config.FlappyConfig, phys *Physics, rng core.Rand) (*Lane, error) {
	events, err := NewEventEngine(cfg.Events, cfg.Field.Height, rng)
	if err != nil {
		return nil, err
	}
	l := &Lane{
		id:         id,
		cfg:        cfg,
		phys:       phys,
		curve:      config.NewCurve(cfg.Difficulty),
		pipes:      NewPipeManager(rng, cfg.Obstacles, cfg.Field.Width),
		events:     events,
		milestones: make(map[int]bool),
	}
	l.resetState()
	return l, nil
}

// ID returns the lane identifier.
func (l *Lane) ID() core.LaneID {
	return l.id
}

// Reset re-initializes the lane for a new round and arms the spawn timer
// at the base interval from nowMs.
func (l *Lane) Reset(nowMs float64) {
	l.resetState()
	l.now = nowMs
	l.spawnArmed = true
	l.spawnInterval = l.phys.Current.SpawnIntervalMs
	l.nextSpawnAt = nowMs + l.spawnInterval
}

func (l *Lane) resetState() {
	l.avatar = Avatar{Rect: core.NewRect(l.cfg.Avatar.X, l.cfg.Avatar.Y, l.cfg.Avatar.Width, l.cfg.Avatar.Height)}
	l.score = 0
	l.pipes.Reset()
	l.events.Reset()
	l.phys.Reset()

	l.gameOver = false
	l.inDeathAnimation = false
	l.deathTimer = 0
	l.hasBounced = false
	l.screenTimer = 0
	l.canRestart = false
	l.roundEnded = false
	l.panel.Reset(l.cfg.Field.Height, l.cfg.Panel)

	l.lastDifficultyUpdate = 0
	clear(l.milestones)

	l.frame = 0
	l.flapTicks = 0
	l.flapping = false
	l.lastDecisionMs = 0

	l.spawnArmed = false
	l.spawnInterval = l.phys.Current.SpawnIntervalMs
	l.nextSpawnAt = 0

	if l.pilot != nil {
		l.pilot.Reset()
	}
}

// Disarm cancels the spawn timer. The lane keeps its state for rendering.
func (l *Lane) Disarm() {
	l.spawnArmed = false
}

// SetPilot hands the lane to an autopilot, or back to a human with nil.
func (l *Lane) SetPilot(p registry.Pilot) {
	l.pilot = p
	if p != nil {
		p.Reset()
	}
}

// Pilot returns the active autopilot, or nil when a human flies the lane.
func (l *Lane) Pilot() registry.Pilot {
	return l.pilot
}

// Flap applies the flap impulse. It is ignored once the round is over.
func (l *Lane) Flap() bool {
	if l.gameOver {
		return false
	}
	l.flap()
	return true
}

func (l *Lane) flap() {
	FlapAvatar(&l.avatar, l.cfg.Physics.FlapImpulse)
	l.flapping = true
	l.flapTicks = 0
}

// Score returns the running score.
func (l *Lane) Score() float64 {
	return l.score
}

// GameOver reports whether the avatar has died this round.
func (l *Lane) GameOver() bool {
	return l.gameOver
}

// CanRestart reports whether the restart delay has elapsed.
func (l *Lane) CanRestart() bool {
	return l.canRestart
}

// State returns the lane's phase.
func (l *Lane) State() LaneState {
	switch {
	case !l.gameOver:
		return LaneAlive
	case l.deathTimer <= l.cfg.Death.AnimationTicks:
		return LaneDeathAnimating
	default:
		return LaneGameOverWaiting
	}
}

// Physics returns the parameters the lane runs with.
func (l *Lane) Physics() *Physics {
	return l.phys
}

// Step advances the lane by one frame at wall-clock time nowMs.
func (l *Lane) Step(nowMs float64) StepResult {
	var res StepResult
	l.now = nowMs
	l.syncSpawnInterval()

	if kind, ok := l.events.Tick(l.phys); ok {
		res.Expired = kind
		l.syncSpawnInterval()
	}
	if !l.gameOver && l.cfg.Events.Trigger == config.TriggerFrame {
		l.rollEvent(&res)
	}

	if l.pilot != nil && !l.gameOver {
		l.lastDecisionMs = nowMs
		if l.pilot.Decide(l.pilotView()) {
			l.flap()
			res.Cues = append(res.Cues, core.CueWing)
		}
	}

	if l.gameOver && !l.inDeathAnimation {
		l.inDeathAnimation = true
		l.deathTimer = 0
	}

	if l.inDeathAnimation {
		l.stepDeath()
	} else if !l.gameOver {
		Integrate(&l.avatar, l.phys.Current.Gravity)
		l.animate()
		if l.avatar.Bottom() > l.cfg.Field.GroundY() || l.avatar.Y <= 0 {
			l.gameOver = true
			res.Cues = append(res.Cues, core.CueDie)
		}
	}

	l.spawnDue()
	l.stepPipes(&res)
	l.pipes.Evict()

	if l.gameOver && l.deathTimer > l.cfg.Death.AnimationTicks {
		l.screenTimer++
		if l.screenTimer > l.cfg.Death.RestartDelayTicks {
			l.canRestart = true
		}
		l.panel.Step(l.cfg.Panel)
		if !l.roundEnded {
			l.roundEnded = true
			res.RoundEnded = true
		}
	}

	return res
}

// stepDeath keeps gravity going without the ceiling clamp and bounces the
// avatar off the ground exactly once.
func (l *Lane) stepDeath() {
	l.deathTimer++
	l.avatar.VelocityY += l.phys.Current.Gravity
	l.avatar.Y += l.avatar.VelocityY

	floor := l.cfg.Field.GroundY() - l.avatar.H
	if l.avatar.Y > floor && !l.hasBounced {
		l.avatar.Y = floor
		if l.avatar.VelocityY > 0 {
			l.avatar.VelocityY = l.cfg.Physics.BounceVelocity
			l.hasBounced = true
		}
	}
}

// animate runs one flap cycle through the logical frames, then rests on 0.
func (l *Lane) animate() {
	if !l.flapping {
		return
	}
	l.flapTicks++
	l.frame = (l.flapTicks / l.cfg.Avatar.FrameTicks) % l.cfg.Avatar.Frames
	if l.flapTicks >= l.cfg.Avatar.Frames*l.cfg.Avatar.FrameTicks {
		l.flapping = false
		l.flapTicks = 0
	}
}

func (l *Lane) stepPipes(res *StepResult) {
	if !l.gameOver {
		l.pipes.Scroll(l.phys.Current.ScrollSpeed)
	}

	pipes := l.pipes.Pipes()
	for i := range pipes {
		p := &pipes[i]
		if !p.Passed && !l.gameOver && l.avatar.X > p.Right() {
			l.pass(p, res)
		}
		if !l.gameOver && l.collides(p.Rect) {
			l.gameOver = true
			res.Cues = append(res.Cues, core.CueHit, core.CueDie)
		}
	}
}

// collides is the shield-aware overlap test.
func (l *Lane) collides(r core.Rect) bool {
	if l.events.Shielded() {
		return false
	}
	return l.avatar.Overlaps(r)
}

// pass scores one cleared pipe half.
func (l *Lane) pass(p *Pipe, res *StepResult) {
	gain := 0.5 * l.events.Multiplier()
	before := math.Floor(l.score)
	l.score += gain
	p.Passed = true

	if floored := math.Floor(l.score); floored > before {
		res.Cues = append(res.Cues, core.CuePoint)
		m := int(floored)
		if l.cfg.Milestones.Hits(m) && !l.milestones[m] {
			l.milestones[m] = true
			res.Milestones = append(res.Milestones, m)
		}
	}

	if l.cfg.Events.Trigger == config.TriggerPassage {
		l.rollEvent(res)
	}
	l.updateDifficulty(res)
}

func (l *Lane) rollEvent(res *StepResult) {
	if kind, ok := l.events.MaybeActivate(l.score, l.phys); ok {
		res.Activated = kind
		l.syncSpawnInterval()
	}
}

// updateDifficulty applies the curve once per crossed milestone.
func (l *Lane) updateDifficulty(res *StepResult) {
	m, ok := l.curve.Milestone(l.score, l.lastDifficultyUpdate)
	if !ok {
		return
	}
	l.lastDifficultyUpdate = m

	d := l.curve.Evaluate(l.score, l.difficultyBase())
	l.phys.Current.ScrollSpeed = d.ScrollSpeed
	l.phys.Current.SpawnIntervalMs = d.SpawnIntervalMs
	l.rearm(d.SpawnIntervalMs)
	res.Difficulty = m
}

// difficultyBase is the curve input: base speed and interval, and the gap
// base as an active bonus round may have widened it.
func (l *Lane) difficultyBase() config.Difficulty {
	return config.Difficulty{
		ScrollSpeed:     l.phys.Base.ScrollSpeed,
		SpawnIntervalMs: l.phys.Base.SpawnIntervalMs,
		GapSize:         l.phys.Current.GapSize,
	}
}

// spawnDue fires the spawn timer when its deadline has passed. Missed
// deadlines are dropped rather than replayed.
func (l *Lane) spawnDue() {
	if !l.spawnArmed || l.gameOver || l.now < l.nextSpawnAt {
		return
	}
	l.pipes.Spawn(l.curve.Evaluate(l.score, l.difficultyBase()).GapSize)
	l.nextSpawnAt += l.spawnInterval
	if l.nextSpawnAt <= l.now {
		l.nextSpawnAt = l.now + l.spawnInterval
	}
}

// rearm restarts the spawn timer with a new interval. The old phase is not
// carried over.
func (l *Lane) rearm(interval float64) {
	l.spawnInterval = interval
	if l.spawnArmed {
		l.nextSpawnAt = l.now + interval
	}
}

// syncSpawnInterval re-arms the timer when an event (possibly the other
// lane's, with shared physics) changed the spawn interval.
func (l *Lane) syncSpawnInterval() {
	if l.phys.Current.SpawnIntervalMs != l.spawnInterval {
		l.rearm(l.phys.Current.SpawnIntervalMs)
	}
}

func (l *Lane) pilotView() core.PilotView {
	l.views = l.pipes.Views(l.views)
	return core.PilotView{
		Avatar:      l.avatar.Rect,
		VelocityY:   l.avatar.VelocityY,
		Obstacles:   l.views,
		FieldHeight: l.cfg.Field.Height,
		GroundY:     l.cfg.Field.GroundY(),
		Score:       l.score,
	}
}

// AnimationFrame returns the logical avatar frame to draw. Dying avatars
// always use the first frame.
func (l *Lane) AnimationFrame() int {
	if l.gameOver {
		return 0
	}
	return core.Clamp(l.frame, 0, l.cfg.Avatar.Frames-1)
}
