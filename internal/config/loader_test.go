package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decodeFlappy(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	want := DefaultFlappyConfig()

	if cfg.Field != want.Field {
		t.Errorf("field = %+v, want %+v", cfg.Field, want.Field)
	}
	if cfg.Physics != want.Physics {
		t.Errorf("physics = %+v, want %+v", cfg.Physics, want.Physics)
	}
	if cfg.Obstacles != want.Obstacles {
		t.Errorf("obstacles = %+v, want %+v", cfg.Obstacles, want.Obstacles)
	}
	if cfg.Difficulty != want.Difficulty {
		t.Errorf("difficulty = %+v, want %+v", cfg.Difficulty, want.Difficulty)
	}
	if len(cfg.Events.Kinds) != len(want.Events.Kinds) {
		t.Fatalf("event kinds = %d, want %d", len(cfg.Events.Kinds), len(want.Events.Kinds))
	}
	for i := range want.Events.Kinds {
		if cfg.Events.Kinds[i] != want.Events.Kinds[i] {
			t.Errorf("event kind %d = %+v, want %+v", i, cfg.Events.Kinds[i], want.Events.Kinds[i])
		}
	}
}

func TestLoadFlappyCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.5\nevents:\n  trigger: passage\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", cfg.Physics.Gravity)
	}
	if cfg.Events.Trigger != TriggerPassage {
		t.Errorf("trigger = %q, want passage", cfg.Events.Trigger)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.FlapImpulse != -6 {
		t.Errorf("flap impulse = %v, want default -6", cfg.Physics.FlapImpulse)
	}
}

func TestLoadFlappyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("events:\n  trigger: sometimes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(path); err == nil {
		t.Error("expected an error for an unknown event trigger")
	}

	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyClassic)
	if cfg.Difficulty.MinIntervalMs != 800 {
		t.Errorf("classic min interval = %v, want 800", cfg.Difficulty.MinIntervalMs)
	}
	if cfg.Autopilot.Policy != "reflex" {
		t.Errorf("classic policy = %q, want reflex", cfg.Autopilot.Policy)
	}

	cfg = DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable the difficulty curve")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestMilestoneHits(t *testing.T) {
	m := DefaultFlappyConfig().Milestones
	for _, s := range []int{41, 67, 100, 200} {
		if !m.Hits(s) {
			t.Errorf("Hits(%d) = false, want true", s)
		}
	}
	for _, s := range []int{0, 5, 42, 150} {
		if m.Hits(s) {
			t.Errorf("Hits(%d) = true, want false", s)
		}
	}
}
