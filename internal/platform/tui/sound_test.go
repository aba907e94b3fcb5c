package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/flapduel/internal/core"
)

func TestCueFlash(t *testing.T) {
	clock := time.Unix(1000, 0)
	rings := 0
	f := NewCueFlash(func() { rings++ })
	f.now = func() time.Time { return clock }

	if _, ok := f.Current(); ok {
		t.Fatal("no cue played yet")
	}

	if err := f.Play(core.CueWing); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if cue, ok := f.Current(); !ok || cue != core.CueWing {
		t.Errorf("Current = %v, %v, want WING", cue, ok)
	}
	if rings != 0 {
		t.Error("WING should not ring the bell")
	}

	f.Play(core.CueHit) //nolint:errcheck
	if rings != 1 {
		t.Errorf("bell rang %d times, want 1", rings)
	}

	clock = clock.Add(cueFlashDuration + time.Millisecond)
	if _, ok := f.Current(); ok {
		t.Error("cue should fade after the flash duration")
	}
}

func TestCueFlashNoBell(t *testing.T) {
	f := NewCueFlash(nil)
	if err := f.Play(core.CueDie); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if cue, ok := f.Current(); !ok || cue != core.CueDie {
		t.Errorf("Current = %v, %v, want DIE", cue, ok)
	}
}
