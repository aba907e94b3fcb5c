package flappy

import (
	"math"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
)

// Params are the mutable physics parameters a lane runs with.
type Params struct {
	ScrollSpeed     float64 // Added to obstacle x every frame (negative = left)
	Gravity         float64
	SpawnIntervalMs float64
	GapSize         float64 // Gap base the difficulty curve shrinks from
}

// Physics holds the current parameters and the immutable base they reset to.
// Lanes own one each unless physics.shared makes them point at the same value.
type Physics struct {
	Base    Params
	Current Params
}

// NewPhysics creates physics parameters from configuration.
func NewPhysics(cfg config.FlappyConfig) *Physics {
	base := Params{
		ScrollSpeed:     cfg.Physics.ScrollSpeed,
		Gravity:         cfg.Physics.Gravity,
		SpawnIntervalMs: cfg.Obstacles.SpawnIntervalMs,
		GapSize:         cfg.Obstacles.GapSize,
	}
	return &Physics{Base: base, Current: base}
}

// Reset restores every current parameter to its base value.
func (p *Physics) Reset() {
	p.Current = p.Base
}

// Avatar is the controllable body of a lane. X never changes.
type Avatar struct {
	core.Rect
	VelocityY float64
}

// Integrate applies one frame of gravity. The avatar never rises above the
// top of the playfield; velocity is not clamped.
func Integrate(a *Avatar, gravity float64) {
	a.VelocityY += gravity
	a.Y = math.Max(a.Y+a.VelocityY, 0)
}

// FlapAvatar replaces the current velocity with the flap impulse.
func FlapAvatar(a *Avatar, impulse float64) {
	a.VelocityY = impulse
}
