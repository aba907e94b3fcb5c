package flappy

import (
	"math"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/registry"
)

// Gap is the opening of the obstacle pair an autopilot aims for.
type Gap struct {
	X        float64
	Top      float64 // Bottom edge of the top half
	Bottom   float64 // Top edge of the bottom half
	Distance float64 // X minus avatar x
}

// Middle returns the vertical center of the gap.
func (g Gap) Middle() float64 {
	return g.Top + (g.Bottom-g.Top)/2
}

// NearestGap finds the closest complete pair whose right edge is still ahead
// of the avatar. Halves are grouped by their shared x; lone halves are
// skipped.
func NearestGap(v core.PilotView) (Gap, bool) {
	type pair struct {
		top, bottom *core.ObstacleView
	}
	groups := make(map[float64]*pair, len(v.Obstacles)/2)
	order := make([]float64, 0, len(v.Obstacles)/2)

	for i := range v.Obstacles {
		o := &v.Obstacles[i]
		if o.Rect.Right() <= v.Avatar.X {
			continue
		}
		g, ok := groups[o.Rect.X]
		if !ok {
			g = &pair{}
			groups[o.Rect.X] = g
			order = append(order, o.Rect.X)
		}
		if o.Role == core.RoleTop {
			g.top = o
		} else {
			g.bottom = o
		}
	}

	best := Gap{Distance: math.Inf(1)}
	found := false
	for _, x := range order {
		g := groups[x]
		if g.top == nil || g.bottom == nil {
			continue
		}
		d := x - v.Avatar.X
		if d < best.Distance {
			best = Gap{X: x, Top: g.top.Rect.Bottom(), Bottom: g.bottom.Rect.Y, Distance: d}
			found = true
		}
	}
	return best, found
}

// trackDecision is the plain tracking rule: flap whenever the avatar center
// sits below the target line.
func trackDecision(v core.PilotView) (bool, Gap, bool) {
	gap, ok := NearestGap(v)
	target := v.FieldHeight / 2
	if ok {
		target = gap.Middle()
	}
	return v.Avatar.CenterY() > target, gap, ok
}

// TrackerPilot flaps whenever the avatar is below the middle of the next gap.
// It holds no state and draws no randomness.
type TrackerPilot struct{}

// Name returns "tracker".
func (TrackerPilot) Name() string { return "tracker" }

// Reset is a no-op.
func (TrackerPilot) Reset() {}

// Decide implements registry.Pilot.
func (TrackerPilot) Decide(v core.PilotView) bool {
	flap, _, _ := trackDecision(v)
	return flap
}

// ReflexPilot plays like a human: tracker decisions arrive after a random
// reaction delay, get inverted by mistakes that grow with score and by
// panic near obstacles, and an emergency flap fires when falling close to
// the ground.
type ReflexPilot struct {
	rng     core.Rand
	cfg     config.AutopilotConfig
	waiting int  // Frames until the planned decision is delivered
	planned bool // Decision waiting to be delivered
}

// NewReflexPilot creates a reflex pilot.
func NewReflexPilot(rng core.Rand, cfg config.AutopilotConfig) *ReflexPilot {
	return &ReflexPilot{rng: rng, cfg: cfg}
}

// Name returns "reflex".
func (p *ReflexPilot) Name() string { return "reflex" }

// Reset drops any pending reaction.
func (p *ReflexPilot) Reset() {
	p.waiting = 0
	p.planned = false
}

// Decide implements registry.Pilot.
func (p *ReflexPilot) Decide(v core.PilotView) bool {
	if v.VelocityY > 0 && v.GroundY-v.Avatar.Bottom() < p.cfg.EmergencyMargin {
		p.Reset()
		return true
	}

	if p.waiting > 0 {
		p.waiting--
		if p.waiting == 0 {
			return p.planned
		}
		return false
	}

	flap, gap, ok := trackDecision(v)
	if p.rng.Float64() < p.mistakeChance(v.Score) {
		flap = !flap
	}
	if ok && gap.Distance < p.cfg.PanicDistance && p.rng.Float64() < p.cfg.PanicChance {
		flap = !flap
	}

	delay := p.reactionDelay()
	if delay == 0 {
		return flap
	}
	p.planned = flap
	p.waiting = delay
	return false
}

func (p *ReflexPilot) mistakeChance(score float64) float64 {
	return math.Min(p.cfg.MistakeBase+score*p.cfg.MistakePerPoint, p.cfg.MistakeMax)
}

// reactionDelay draws a whole number of frames in [ReactionMin, ReactionMax].
func (p *ReflexPilot) reactionDelay() int {
	span := p.cfg.ReactionMax - p.cfg.ReactionMin + 1
	if span <= 1 {
		return max(p.cfg.ReactionMin, 0)
	}
	return p.cfg.ReactionMin + min(int(p.rng.Float64()*float64(span)), span-1)
}

func init() {
	registry.Register("tracker", "deterministic, flaps below the middle of the next gap",
		func(core.Rand, config.AutopilotConfig) registry.Pilot {
			return TrackerPilot{}
		})
	registry.Register("reflex", "reaction delay, score-driven mistakes, panic and emergency flaps",
		func(rng core.Rand, cfg config.AutopilotConfig) registry.Pilot {
			return NewReflexPilot(rng, cfg)
		})
}
