package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			Width:        480,
			Height:       800,
			GroundMargin: 90,
		},
		Avatar: AvatarConfig{
			X:          60, // field width / 8
			Y:          400,
			Width:      45,
			Height:     32,
			Frames:     3,
			FrameTicks: 3,
		},
		Physics: PhysicsConfig{
			Gravity:        0.41,
			FlapImpulse:    -6,
			BounceVelocity: -7,
			ScrollSpeed:    -5,
		},
		Obstacles: ObstacleConfig{
			Width:           85,
			Height:          680,
			SpawnBaselineY:  0,
			SpawnIntervalMs: 1750,
			GapSize:         200, // field height / 4
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			MilestoneEvery: 5,
			SpeedFactor:    0.1,
			SpeedCap:       2.5,
			IntervalFactor: 0.05,
			MinIntervalMs:  1000,
			GapShrink:      2,
			GapFloor:       0.6,
		},
		Events: EventsConfig{
			Enabled:         true,
			Trigger:         TriggerFrame,
			MinScore:        2,
			BaseChance:      0.05,
			ScoreChance:     0.01,
			MaxScoreBonus:   0.15,
			BonusGapDivisor: 3,
			SpeedBoost:      1.8,
			LowGravity:      0.25,
			BossSpeed:       1.5,
			BossInterval:    0.7,
			Kinds: []EventKindConfig{
				{Kind: "bonus_round", Weight: 0.15, Duration: 600},
				{Kind: "speed_boost", Weight: 0.12, Duration: 480},
				{Kind: "gravity_shift", Weight: 0.18, Duration: 720},
				{Kind: "score_multiplier", Weight: 0.20, Duration: 600},
				{Kind: "shield_mode", Weight: 0.10, Duration: 300},
				{Kind: "boss_fight", Weight: 0.08, Duration: 900},
			},
		},
		Death: DeathConfig{
			AnimationTicks:    60,
			RestartDelayTicks: 60,
		},
		Panel: PanelConfig{
			Spring:         0.3,
			Damping:        0.7,
			SettleDistance: 2,
			SettleVelocity: 0.5,
			TargetOffset:   100,
		},
		Autopilot: AutopilotConfig{
			Policy:          "tracker",
			ReactionMin:     3,
			ReactionMax:     8,
			MistakeBase:     0.02,
			MistakePerPoint: 0.005,
			MistakeMax:      0.2,
			PanicDistance:   120,
			PanicChance:     0.25,
			EmergencyMargin: 60,
		},
		Session: SessionConfig{
			CountdownFrom:   3,
			CountdownStepMs: 1000,
			GoDelayMs:       500,
		},
		Milestones: MilestoneConfig{
			Scores: []int{41, 67},
			Every:  100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
