package flappy

import (
	"slices"

	"github.com/vovakirdan/flapduel/internal/core"
)

// Snapshot is the read-only render input for one lane.
// Pipes is a copy; mutating it does not affect the lane.
type Snapshot struct {
	ID         core.LaneID
	Avatar     core.Rect
	VelocityY  float64
	Frame      int // Logical animation frame, always valid
	Pipes      []Pipe
	Score      float64
	State      LaneState
	GameOver   bool
	CanRestart bool
	Panel      Panel
	Event      EventRecord // Event.Active is false when no event runs
	Params     Params
	Pilot      string // Empty when a human flies the lane

	FieldWidth  float64
	FieldHeight float64
	GroundY     float64

	LastDecisionMs float64 // Wall clock of the last autopilot decision
}

// Snapshot returns the current lane state.
func (l *Lane) Snapshot() Snapshot {
	s := Snapshot{
		ID:             l.id,
		Avatar:         l.avatar.Rect,
		VelocityY:      l.avatar.VelocityY,
		Frame:          l.AnimationFrame(),
		Pipes:          slices.Clone(l.pipes.Pipes()),
		Score:          l.score,
		State:          l.State(),
		GameOver:       l.gameOver,
		CanRestart:     l.canRestart,
		Panel:          l.panel,
		Event:          l.events.Record(),
		Params:         l.phys.Current,
		FieldWidth:     l.cfg.Field.Width,
		FieldHeight:    l.cfg.Field.Height,
		GroundY:        l.cfg.Field.GroundY(),
		LastDecisionMs: l.lastDecisionMs,
	}
	if l.pilot != nil {
		s.Pilot = l.pilot.Name()
	}
	return s
}
