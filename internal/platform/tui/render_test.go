package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flapduel/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(12, 2)
	scr.DrawTextColored(0, 0, "P1 7", core.LaneColor(core.Lane1))
	scr.DrawTextColored(6, 0, "P2 3", core.LaneColor(core.Lane2))
	for x := range 12 {
		scr.SetColored(x, 1, GroundTop, core.ColorGroundTop)
	}

	out := RenderScreen(scr)
	for _, want := range []string{"P1 7", "P2 3", strings.Repeat(string(GroundTop), 12)} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output is missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered %d line breaks, want 1", got)
	}
}

func TestStyleForEveryPlayfieldColor(t *testing.T) {
	colors := []core.Color{
		core.ColorLane1, core.ColorLane2,
		core.ColorPipeTop, core.ColorPipeBottom,
		core.ColorGroundTop, core.ColorGround,
		core.ColorBanner,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color should render plain, got %q", got)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{100, 10 * time.Millisecond},
		{50, 20 * time.Millisecond},
		{0, time.Second / 90},
		{-5, time.Second / 90},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
