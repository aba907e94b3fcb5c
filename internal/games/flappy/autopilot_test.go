package flappy

import (
	"testing"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/registry"
)

func pairViews(x, topBottom, gap float64) []core.ObstacleView {
	return []core.ObstacleView{
		{Rect: core.NewRect(x, topBottom-680, 85, 680), Role: core.RoleTop},
		{Rect: core.NewRect(x, topBottom+gap, 85, 680), Role: core.RoleBottom},
	}
}

func viewAt(y float64, obstacles []core.ObstacleView) core.PilotView {
	return core.PilotView{
		Avatar:      core.NewRect(60, y, 45, 32),
		Obstacles:   obstacles,
		FieldHeight: 800,
		GroundY:     710,
	}
}

func TestNearestGap(t *testing.T) {
	var obs []core.ObstacleView
	obs = append(obs, pairViews(-40, 100, 200)...) // fully behind the avatar
	obs = append(obs, pairViews(300, 250, 200)...)
	obs = append(obs, pairViews(150, 200, 200)...)
	// A lone half closer than any pair is ignored.
	obs = append(obs, core.ObstacleView{Rect: core.NewRect(100, -400, 85, 680), Role: core.RoleTop})

	gap, ok := NearestGap(viewAt(300, obs))
	if !ok {
		t.Fatal("expected a gap")
	}
	if gap.X != 150 {
		t.Errorf("nearest pair x = %v, want 150", gap.X)
	}
	if gap.Top != 200 || gap.Bottom != 400 {
		t.Errorf("gap = [%v, %v], want [200, 400]", gap.Top, gap.Bottom)
	}
	if gap.Middle() != 300 {
		t.Errorf("middle = %v, want 300", gap.Middle())
	}
	if gap.Distance != 90 {
		t.Errorf("distance = %v, want 90", gap.Distance)
	}
}

func TestNearestGapOverlappingAvatar(t *testing.T) {
	// Left edge behind the avatar but right edge still ahead counts.
	gap, ok := NearestGap(viewAt(300, pairViews(30, 200, 200)))
	if !ok || gap.Distance != -30 {
		t.Errorf("NearestGap() = %+v, %v; want distance -30", gap, ok)
	}
}

func TestTrackerPilot(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		obstacles []core.ObstacleView
		want      bool
	}{
		{"below gap middle", 320, pairViews(200, 200, 200), true},
		{"above gap middle", 250, pairViews(200, 200, 200), false},
		{"exactly at middle", 284, pairViews(200, 200, 200), false},
		{"no pipes, below center", 500, nil, true},
		{"no pipes, above center", 300, nil, false},
	}

	var p TrackerPilot
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(viewAt(tt.y, tt.obstacles)); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReflexPilotReactionDelay(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Autopilot
	// Mistake roll misses, delay roll picks the minimum of 3 frames.
	p := NewReflexPilot(&scriptedRand{vals: []float64{0.99, 0}}, cfg)
	v := viewAt(600, nil)

	for i := 1; i <= 3; i++ {
		if p.Decide(v) {
			t.Fatalf("call %d: decision delivered before the reaction delay", i)
		}
	}
	if !p.Decide(v) {
		t.Error("planned flap should be delivered after 3 waiting frames")
	}
}

func TestReflexPilotMistake(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Autopilot
	cfg.ReactionMin, cfg.ReactionMax = 0, 0
	// Mistake roll hits: the tracker's flap is inverted.
	p := NewReflexPilot(constRand(0.001), cfg)

	if p.Decide(viewAt(600, nil)) {
		t.Error("a mistake should invert the flap")
	}
}

func TestReflexPilotPanic(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Autopilot
	cfg.ReactionMin, cfg.ReactionMax = 0, 0
	// No mistake, then the panic roll hits with a pair 90 units away.
	p := NewReflexPilot(&scriptedRand{vals: []float64{0.99, 0.1}}, cfg)

	if p.Decide(viewAt(320, pairViews(150, 200, 200))) {
		t.Error("panic near a pipe should invert the flap")
	}
}

func TestReflexPilotEmergencyFlap(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Autopilot
	p := NewReflexPilot(constRand(0.99), cfg)

	// Schedule a pending decision first.
	p.Decide(viewAt(300, nil))

	v := viewAt(650, nil) // bottom 682, 28 above the ground
	v.VelocityY = 3
	if !p.Decide(v) {
		t.Error("falling close to the ground must flap immediately")
	}
	if p.waiting != 0 {
		t.Error("emergency flap should cancel the pending reaction")
	}
}

func TestReflexPilotMistakeChanceCapped(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Autopilot
	p := NewReflexPilot(constRand(0), cfg)

	if got := p.mistakeChance(0); got != 0.02 {
		t.Errorf("mistake chance at 0 = %v, want 0.02", got)
	}
	if got := p.mistakeChance(1000); got != 0.2 {
		t.Errorf("mistake chance at 1000 = %v, want cap 0.2", got)
	}
}

func TestPilotsRegistered(t *testing.T) {
	for _, name := range []string{"tracker", "reflex"} {
		p, err := registry.Create(name, constRand(0.5), config.DefaultFlappyConfig().Autopilot)
		if err != nil {
			t.Fatalf("registry.Create(%q) failed: %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("pilot name = %q, want %q", p.Name(), name)
		}
	}
}
