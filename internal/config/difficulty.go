package config

import "math"

// Difficulty is the set of parameters the curve controls.
type Difficulty struct {
	ScrollSpeed     float64 // Negative = leftwards
	SpawnIntervalMs float64
	GapSize         float64
}

// Curve maps accumulated score to difficulty using a square-root ramp.
// It holds no per-round state; lanes track which milestone they applied.
type Curve struct {
	cfg DifficultyConfig
}

// NewCurve creates a difficulty curve.
func NewCurve(cfg DifficultyConfig) *Curve {
	return &Curve{cfg: cfg}
}

// Evaluate returns the difficulty at the given score relative to base.
// With progression disabled it returns base unchanged.
func (c *Curve) Evaluate(score float64, base Difficulty) Difficulty {
	if !c.cfg.Enabled {
		return base
	}
	root := math.Sqrt(math.Max(score, 0))

	speed := base.ScrollSpeed * (1 + root*c.cfg.SpeedFactor)
	speedCap := base.ScrollSpeed * c.cfg.SpeedCap
	if math.Abs(speed) > math.Abs(speedCap) {
		speed = speedCap
	}

	interval := math.Max(base.SpawnIntervalMs/(1+root*c.cfg.IntervalFactor), c.cfg.MinIntervalMs)
	gap := math.Max(base.GapSize-root*c.cfg.GapShrink, base.GapSize*c.cfg.GapFloor)

	return Difficulty{
		ScrollSpeed:     speed,
		SpawnIntervalMs: interval,
		GapSize:         gap,
	}
}

// Milestone returns the highest milestone reached by score and whether it is
// beyond last (the milestone already applied).
func (c *Curve) Milestone(score float64, last int) (int, bool) {
	if !c.cfg.Enabled || c.cfg.MilestoneEvery <= 0 {
		return last, false
	}
	every := c.cfg.MilestoneEvery
	threshold := int(math.Floor(score/float64(every))) * every
	if threshold > last {
		return threshold, true
	}
	return last, false
}
