package core

// Cue is a fire-and-forget sound signal emitted by the simulation.
type Cue int

const (
	CueWing  Cue = iota // Flap, menu move, countdown beat
	CueHit              // Obstacle collision
	CueDie              // Avatar died
	CuePoint            // Floored score increased, countdown finished
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueWing:
		return "wing"
	case CueHit:
		return "hit"
	case CueDie:
		return "die"
	case CuePoint:
		return "point"
	default:
		return "unknown"
	}
}

// SoundSink plays cues. Errors are reported for logging only; callers never
// let them affect game state.
type SoundSink interface {
	Play(cue Cue) error
}

// SoundFunc adapts a plain function to SoundSink.
type SoundFunc func(cue Cue) error

// Play calls f(cue).
func (f SoundFunc) Play(cue Cue) error {
	return f(cue)
}

// NopSound discards every cue.
var NopSound SoundSink = SoundFunc(func(Cue) error { return nil })
