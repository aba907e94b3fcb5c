// Package config provides YAML-based game configuration loading and
// the score-driven difficulty curve.
package config

import "fmt"

// FlappyConfig contains all tunables of the two-lane flying game.
type FlappyConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Avatar     AvatarConfig     `yaml:"avatar"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Events     EventsConfig     `yaml:"events"`
	Death      DeathConfig      `yaml:"death"`
	Panel      PanelConfig      `yaml:"panel"`
	Autopilot  AutopilotConfig  `yaml:"autopilot"`
	Session    SessionConfig    `yaml:"session"`
	Milestones MilestoneConfig  `yaml:"milestones"`
}

// FieldConfig defines the playfield of one lane in playfield units.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundMargin float64 `yaml:"ground_margin"` // Distance from the bottom edge to the ground line
}

// GroundY returns the y-coordinate of the ground line.
func (f FieldConfig) GroundY() float64 {
	return f.Height - f.GroundMargin
}

// AvatarConfig defines the avatar hitbox and flap animation.
type AvatarConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Frames     int     `yaml:"frames"`      // Logical animation frames per flap cycle
	FrameTicks int     `yaml:"frame_ticks"` // Ticks each frame is shown
}

// PhysicsConfig defines the base physics parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	FlapImpulse    float64 `yaml:"flap_impulse"`    // Negative = up
	BounceVelocity float64 `yaml:"bounce_velocity"` // Velocity after the single death bounce
	ScrollSpeed    float64 `yaml:"scroll_speed"`    // Negative = obstacles move left
	Shared         bool    `yaml:"shared"`          // Both lanes share one parameter set
}

// ObstacleConfig defines obstacle geometry and spawn pacing.
type ObstacleConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	SpawnBaselineY  float64 `yaml:"spawn_baseline_y"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	GapSize         float64 `yaml:"gap_size"`
}

// DifficultyConfig defines the square-root difficulty curve.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	MilestoneEvery int     `yaml:"milestone_every"` // Whole points between re-evaluations
	SpeedFactor    float64 `yaml:"speed_factor"`
	SpeedCap       float64 `yaml:"speed_cap"` // Max scroll speed as a multiple of base
	IntervalFactor float64 `yaml:"interval_factor"`
	MinIntervalMs  float64 `yaml:"min_interval_ms"`
	GapShrink      float64 `yaml:"gap_shrink"`
	GapFloor       float64 `yaml:"gap_floor"` // Min gap as a fraction of base
}

// EventTrigger selects when an idle lane rolls for a random event.
type EventTrigger string

const (
	TriggerFrame   EventTrigger = "frame"   // Every frame while idle
	TriggerPassage EventTrigger = "passage" // Every obstacle-half passage
)

// EventsConfig defines the random event engine.
type EventsConfig struct {
	Enabled         bool              `yaml:"enabled"`
	Trigger         EventTrigger      `yaml:"trigger"`
	MinScore        float64           `yaml:"min_score"`
	BaseChance      float64           `yaml:"base_chance"`
	ScoreChance     float64           `yaml:"score_chance"`
	MaxScoreBonus   float64           `yaml:"max_score_bonus"`
	BonusGapDivisor float64           `yaml:"bonus_gap_divisor"` // Gap base becomes field height / divisor
	SpeedBoost      float64           `yaml:"speed_boost"`
	LowGravity      float64           `yaml:"low_gravity"`
	BossSpeed       float64           `yaml:"boss_speed"`
	BossInterval    float64           `yaml:"boss_interval"`
	Kinds           []EventKindConfig `yaml:"kinds"`
}

// EventKindConfig defines the weight and duration of one event kind.
type EventKindConfig struct {
	Kind     string  `yaml:"kind"`
	Weight   float64 `yaml:"weight"`
	Duration int     `yaml:"duration"` // Ticks
}

// DeathConfig defines the death sequence timing.
type DeathConfig struct {
	AnimationTicks    int `yaml:"animation_ticks"`
	RestartDelayTicks int `yaml:"restart_delay_ticks"`
}

// PanelConfig defines the game-over panel spring.
type PanelConfig struct {
	Spring         float64 `yaml:"spring"`
	Damping        float64 `yaml:"damping"`
	SettleDistance float64 `yaml:"settle_distance"`
	SettleVelocity float64 `yaml:"settle_velocity"`
	TargetOffset   float64 `yaml:"target_offset"` // Target is field center minus this
}

// AutopilotConfig selects and tunes the autopilot policy.
type AutopilotConfig struct {
	Policy          string  `yaml:"policy"`
	ReactionMin     int     `yaml:"reaction_min"`
	ReactionMax     int     `yaml:"reaction_max"`
	MistakeBase     float64 `yaml:"mistake_base"`
	MistakePerPoint float64 `yaml:"mistake_per_point"`
	MistakeMax      float64 `yaml:"mistake_max"`
	PanicDistance   float64 `yaml:"panic_distance"`
	PanicChance     float64 `yaml:"panic_chance"`
	EmergencyMargin float64 `yaml:"emergency_margin"`
}

// SessionConfig defines countdown pacing.
type SessionConfig struct {
	CountdownFrom   int     `yaml:"countdown_from"`
	CountdownStepMs float64 `yaml:"countdown_step_ms"`
	GoDelayMs       float64 `yaml:"go_delay_ms"`
}

// MilestoneConfig defines the floored scores that fire the milestone hook.
type MilestoneConfig struct {
	Scores []int `yaml:"scores"`
	Every  int   `yaml:"every"` // Also fire at every positive multiple (0 disables)
}

// Hits reports whether a floored score is a milestone.
func (m MilestoneConfig) Hits(score int) bool {
	for _, s := range m.Scores {
		if s == score {
			return true
		}
	}
	return m.Every > 0 && score > 0 && score%m.Every == 0
}

// Validate checks the invariants the simulation relies on.
func (c FlappyConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("config: field must have positive size, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		return fmt.Errorf("config: obstacles must have positive size")
	}
	if c.Obstacles.SpawnIntervalMs <= 0 {
		return fmt.Errorf("config: spawn_interval_ms must be positive, got %v", c.Obstacles.SpawnIntervalMs)
	}
	if c.Avatar.Frames <= 0 || c.Avatar.FrameTicks <= 0 {
		return fmt.Errorf("config: avatar animation needs at least one frame and one tick per frame")
	}
	if c.Difficulty.Enabled && c.Difficulty.MilestoneEvery <= 0 {
		return fmt.Errorf("config: milestone_every must be positive when difficulty is enabled")
	}
	switch c.Events.Trigger {
	case TriggerFrame, TriggerPassage:
	default:
		return fmt.Errorf("config: unknown event trigger %q", c.Events.Trigger)
	}
	for _, k := range c.Events.Kinds {
		if k.Weight < 0 || k.Duration <= 0 {
			return fmt.Errorf("config: event %q needs a non-negative weight and positive duration", k.Kind)
		}
	}
	if c.Autopilot.ReactionMax < c.Autopilot.ReactionMin {
		return fmt.Errorf("config: reaction_max (%d) below reaction_min (%d)", c.Autopilot.ReactionMax, c.Autopilot.ReactionMin)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyClassic DifficultyPreset = "classic"
	DifficultyFixed   DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyClassic, DifficultyFixed:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("unknown difficulty preset %q (want normal, classic or fixed)", name)
	}
}
