package tui

import (
	"sync"
	"time"

	"github.com/vovakirdan/flapduel/internal/core"
)

// cueFlashDuration is how long a cue stays visible in the HUD.
const cueFlashDuration = 250 * time.Millisecond

// CueFlash is a SoundSink for terminals without audio: it remembers the
// last cue so the HUD can flash it. An optional bell rings the terminal
// bell on HIT and DIE.
type CueFlash struct {
	mu   sync.Mutex
	last core.Cue
	at   time.Time
	now  func() time.Time
	bell func()
}

// NewCueFlash creates a flash sink. bell may be nil.
func NewCueFlash(bell func()) *CueFlash {
	return &CueFlash{now: time.Now, bell: bell}
}

// Play records the cue.
func (f *CueFlash) Play(cue core.Cue) error {
	f.mu.Lock()
	f.last = cue
	f.at = f.now()
	f.mu.Unlock()

	if f.bell != nil && (cue == core.CueHit || cue == core.CueDie) {
		f.bell()
	}
	return nil
}

// Current returns the last cue while it is still fresh.
func (f *CueFlash) Current() (core.Cue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.at.IsZero() || f.now().Sub(f.at) > cueFlashDuration {
		return 0, false
	}
	return f.last, true
}
