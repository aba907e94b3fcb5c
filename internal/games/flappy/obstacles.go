package flappy

import (
	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
)

// Pipe is one half of an obstacle pair.
type Pipe struct {
	core.Rect
	Passed bool              // Whether the avatar has cleared this half (for scoring)
	Role   core.ObstacleRole // Top or bottom half
}

// PipeManager handles spawning, movement, and removal of pipes.
// Pipes are kept in spawn order, which is also left-to-right order.
type PipeManager struct {
	pipes      []Pipe
	rng        core.Rand
	cfg        config.ObstacleConfig
	fieldWidth float64
}

// NewPipeManager creates a pipe manager drawing gap positions from rng.
func NewPipeManager(rng core.Rand, cfg config.ObstacleConfig, fieldWidth float64) *PipeManager {
	return &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		rng:        rng,
		cfg:        cfg,
		fieldWidth: fieldWidth,
	}
}

// Reset clears all pipes.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
}

// Spawn appends a top/bottom pair at the right edge of the field.
//
// The gap top is drawn from [baseline - 3H/4, baseline - H/4], so the gap
// favours the upper part of the field.
func (pm *PipeManager) Spawn(gap float64) {
	h := pm.cfg.Height
	topY := pm.cfg.SpawnBaselineY - h/4 - pm.rng.Float64()*(h/2)

	pm.pipes = append(pm.pipes,
		Pipe{
			Rect: core.NewRect(pm.fieldWidth, topY, pm.cfg.Width, h),
			Role: core.RoleTop,
		},
		Pipe{
			Rect: core.NewRect(pm.fieldWidth, topY+h+gap, pm.cfg.Width, h),
			Role: core.RoleBottom,
		},
	)
}

// Scroll moves every pipe horizontally by dx.
func (pm *PipeManager) Scroll(dx float64) {
	for i := range pm.pipes {
		pm.pipes[i].X += dx
	}
}

// Evict drops pipes from the front once they are fully past the left edge.
func (pm *PipeManager) Evict() {
	n := 0
	for n < len(pm.pipes) && pm.pipes[n].X < -pm.cfg.Width {
		n++
	}
	if n > 0 {
		pm.pipes = append(pm.pipes[:0], pm.pipes[n:]...)
	}
}

// Pipes returns the current list of pipes. The slice is owned by the manager.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Views returns the pipes as read-only obstacle views, appended to buf.
func (pm *PipeManager) Views(buf []core.ObstacleView) []core.ObstacleView {
	buf = buf[:0]
	for _, p := range pm.pipes {
		buf = append(buf, core.ObstacleView{Rect: p.Rect, Role: p.Role})
	}
	return buf
}
