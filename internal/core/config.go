package core

// RuntimeConfig contains configuration passed to the session at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 90)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 90,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameIntervalMs returns the minimum wall-clock gap between two simulated frames.
func (c RuntimeConfig) FrameIntervalMs() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 90
	}
	return 1000.0 / float64(rate)
}

// Rand is a source of uniform draws in [0, 1).
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
}
