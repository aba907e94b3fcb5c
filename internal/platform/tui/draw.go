package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/games/flappy"
	"github.com/vovakirdan/flapduel/internal/session"
)

// Glyphs used by the renderer.
const (
	AvatarChar   = '@'
	DeadChar     = 'x'
	PipeChar     = '█'
	PipeCapChar  = '▓'
	GroundChar   = '▒'
	GroundTop    = '='
	DividerChar  = '│'
	ShieldMarker = "[S]"
)

// wingChars is indexed by the logical animation frame.
var wingChars = [...]rune{'-', '^', 'v'}

// Frame is everything drawn for one terminal frame.
type Frame struct {
	State    session.State
	Lanes    [core.LaneCount]flappy.Snapshot
	Visible  [core.LaneCount]bool
	Cue      core.Cue
	CueOn    bool // Cue was played recently
	TickRate int
	Blink    bool // Toggles a few times per second
}

// Draw renders a frame into dst. The leaderboard phase is drawn by the
// Leaderboard component instead.
func Draw(dst *core.Screen, f Frame) {
	dst.Clear()
	if dst.Width() < 10 || dst.Height() < 6 {
		dst.DrawText(0, 0, "too small")
		return
	}

	switch f.State.Phase {
	case session.PhaseTitle:
		drawTitle(dst, f.State)
	case session.PhaseCountdown:
		drawCountdown(dst, f.State)
	case session.PhasePlaying:
		drawPlaying(dst, f)
	}
}

func drawTitle(dst *core.Screen, st session.State) {
	w, h := dst.Width(), dst.Height()
	items := session.MenuItems()

	top := max((h-len(items)*2-8)/2, 0)
	dst.DrawTextCenteredIn(0, w, top, "F L A P D U E L", core.ColorBrightYellow)
	dst.DrawTextCenteredIn(0, w, top+1, "two lanes, one sky", core.ColorGray)

	y := top + 4
	for i, item := range items {
		label := item.Label
		if !item.Leaderboard {
			label = fmt.Sprintf("%-14s best %d", item.Label, st.Best[item.Mode])
		}
		color := core.ColorWhite
		if i == st.MenuIndex {
			label = "> " + label + " <"
			color = core.ColorBrightCyan
		}
		dst.DrawTextCenteredIn(0, w, y, label, color)
		y += 2
	}

	dst.DrawTextCenteredIn(0, w, h-1, "Up/Down: Navigate  |  Enter: Select  |  Q: Quit", core.ColorGray)
}

func drawCountdown(dst *core.Screen, st session.State) {
	w, h := dst.Width(), dst.Height()
	dst.DrawTextCenteredIn(0, w, h/2-2, st.Mode.String(), core.ColorWhite)

	text := "GO!"
	if st.Countdown > 0 {
		text = fmt.Sprintf("%d", st.Countdown)
	}
	dst.DrawTextCenteredIn(0, w, h/2, text, core.ColorBrightYellow)

	var ai []string
	for i, on := range st.AI {
		if on && st.Mode.LaneActive(core.LaneID(i)) {
			ai = append(ai, fmt.Sprintf("P%d", i+1))
		}
	}
	if len(ai) > 0 {
		dst.DrawTextCenteredIn(0, w, h/2+2, "AI: "+strings.Join(ai, " "), core.ColorGray)
	}
}

func drawPlaying(dst *core.Screen, f Frame) {
	w, h := dst.Width(), dst.Height()

	var visible []core.LaneID
	for i, ok := range f.Visible {
		if ok {
			visible = append(visible, core.LaneID(i))
		}
	}
	if len(visible) == 0 {
		return
	}

	laneW := (w - (len(visible) - 1)) / len(visible)
	for i, id := range visible {
		x0 := i * (laneW + 1)
		if i > 0 {
			for y := 0; y < h-1; y++ {
				dst.SetColored(x0-1, y, DividerChar, core.ColorGray)
			}
		}
		drawLane(dst, x0, 0, laneW, h-1, f.Lanes[id], f)
	}

	footer := "space/w: flap left  up/i: flap right  a: AI  r: restart  m: menu"
	if f.State.Mode == session.ModeSingle {
		footer = "space/w: flap  a: AI  r: restart  m: menu"
	}
	dst.DrawTextColored(0, h-1, footer, core.ColorGray)
	if f.CueOn {
		cue := "♪ " + f.Cue.String()
		dst.DrawTextColored(w-len([]rune(cue)), h-1, cue, core.ColorBrightMagenta)
	}
}

// laneScale maps playfield units to cells of a lane region.
type laneScale struct {
	x0, y0 int
	sx, sy float64
	w, h   int
}

func (s laneScale) col(x float64) int { return s.x0 + int(math.Floor(x*s.sx)) }
func (s laneScale) row(y float64) int { return s.y0 + int(math.Floor(y*s.sy)) }

func drawLane(dst *core.Screen, x0, y0, w, h int, snap flappy.Snapshot, f Frame) {
	// Row 0 is the HUD.
	fieldY0 := y0 + 1
	fieldH := h - 1
	sc := laneScale{
		x0: x0,
		y0: fieldY0,
		sx: float64(w) / snap.FieldWidth,
		sy: float64(fieldH) / snap.FieldHeight,
		w:  w,
		h:  fieldH,
	}
	clip := func(x, y int) bool {
		return x >= x0 && x < x0+w && y >= fieldY0 && y < fieldY0+fieldH
	}
	groundRow := sc.row(snap.GroundY)

	for _, p := range snap.Pipes {
		drawPipe(dst, sc, p, groundRow, clip)
	}

	for y := groundRow; y < fieldY0+fieldH; y++ {
		r, color := GroundChar, core.ColorGround
		if y == groundRow {
			r, color = GroundTop, core.ColorGroundTop
		}
		for x := x0; x < x0+w; x++ {
			dst.SetColored(x, y, r, color)
		}
	}

	drawAvatar(dst, sc, snap, clip)
	drawHUD(dst, x0, y0, w, snap, f)

	if snap.State == flappy.LaneGameOverWaiting {
		drawPanel(dst, sc, snap, f)
	}
}

func drawPipe(dst *core.Screen, sc laneScale, p flappy.Pipe, groundRow int, clip func(x, y int) bool) {
	left, right := sc.col(p.X), sc.col(p.Right())
	if right <= left {
		right = left + 1
	}
	top, bottom := sc.row(p.Y), sc.row(p.Bottom())
	if bottom > groundRow {
		bottom = groundRow
	}
	color := core.RoleColor(p.Role)

	// The cap sits on the edge facing the gap.
	capRow := bottom - 1
	if p.Role == core.RoleBottom {
		capRow = top
	}
	for y := top; y < bottom; y++ {
		r := PipeChar
		if y == capRow {
			r = PipeCapChar
		}
		for x := left; x < right; x++ {
			if clip(x, y) {
				dst.SetColored(x, y, r, color)
			}
		}
	}
}

func drawAvatar(dst *core.Screen, sc laneScale, snap flappy.Snapshot, clip func(x, y int) bool) {
	a := snap.Avatar
	left, top := sc.col(a.X), sc.row(a.Y)
	right, bottom := max(sc.col(a.Right()), left+1), max(sc.row(a.Bottom()), top+1)
	color := core.LaneColor(snap.ID)

	body := AvatarChar
	if snap.GameOver {
		body = DeadChar
		color = core.ColorRed
	}
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			if clip(x, y) {
				dst.SetColored(x, y, body, color)
			}
		}
	}
	if !snap.GameOver && clip(left, top) {
		dst.SetColored(left, top, wingChars[snap.Frame%len(wingChars)], color)
	}
}

func drawHUD(dst *core.Screen, x0, y0, w int, snap flappy.Snapshot, f Frame) {
	score := int(snap.Score)
	hud := fmt.Sprintf("P%d %d", int(snap.ID)+1, score)
	if snap.Pilot != "" {
		hud += " [AI]"
	}
	dst.DrawTextColored(x0, y0, hud, core.LaneColor(snap.ID))

	if !snap.Event.Active {
		return
	}
	rate := f.TickRate
	if rate <= 0 {
		rate = 90
	}
	secs := (snap.Event.Remaining() + rate - 1) / rate
	banner := fmt.Sprintf("%s %ds", snap.Event.Kind, secs)
	if snap.Event.Kind == flappy.EventShieldMode {
		banner = ShieldMarker + " " + banner
	}
	x := x0 + w - len([]rune(banner))
	if x < x0+len(hud)+1 {
		x = x0 + len(hud) + 1
	}
	dst.DrawTextColored(x, y0, banner, core.ColorBanner)

	if desc := snap.Event.Kind.Description(); len([]rune(desc)) <= w {
		dst.DrawTextCenteredIn(x0, w, y0+1, desc, core.ColorGray)
	}
}

func drawPanel(dst *core.Screen, sc laneScale, snap flappy.Snapshot, f Frame) {
	lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", int(snap.Score))}
	if f.State.NewBest[snap.ID] {
		if f.Blink {
			lines = append(lines, "NEW HIGH SCORE!")
		} else {
			lines = append(lines, "")
		}
	}
	switch {
	case f.State.CanRestart:
		lines = append(lines, "R: restart  M: menu")
	case snap.CanRestart:
		lines = append(lines, "Waiting for other player...")
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW = min(boxW+4, sc.w)
	boxH := len(lines) + 2
	x := sc.x0 + (sc.w-boxW)/2
	y := sc.row(snap.Panel.Y) - boxH/2
	if y < sc.y0 {
		y = sc.y0
	}
	if y+boxH > sc.y0+sc.h {
		// Still sliding in from below the field.
		return
	}

	dst.FillRect(x, y, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(x, y, boxW, boxH, core.ColorWhite)
	for i, l := range lines {
		color := core.ColorWhite
		if strings.HasPrefix(l, "NEW") {
			color = core.ColorBrightYellow
		}
		dst.DrawTextCenteredIn(x, boxW, y+1+i, l, color)
	}
}
