package lander

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
	sim "github.com/vovakirdan/tui-lander/internal/lander"
)

// Visual characters for rendering
const (
	CraftChar    = '█'
	PlatformChar = '▀'
	PadEdgeChar  = '▪'
	WaveChar     = '~'
	SwellChar    = '≈'
)

const hudRows = 1

var flameRunes = []rune{'*', '+', '\'', '.', '°'}
var flameColors = []core.Color{core.ColorOrange, core.ColorBrightYellow, core.ColorRed, core.ColorYellow}

// viewport maps world units onto the cells below the HUD.
type viewport struct {
	cols, rows int
	sx, sy     float64 // Cells per world unit
}

func newViewport(dst *core.Screen, p sim.Params) viewport {
	rows := max(dst.Height()-hudRows, 1)
	return viewport{
		cols: dst.Width(),
		rows: rows,
		sx:   float64(dst.Width()) / p.ScreenW,
		sy:   float64(rows) / p.ScreenH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return hudRows + int(math.Floor(y*v.sy))
}

// world returns the world position of the center of a cell.
func (v viewport) world(col, row int) (float64, float64) {
	return (float64(col) + 0.5) / v.sx, (float64(row-hudRows) + 0.5) / v.sy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.episode == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	p := g.episode.Params()
	v := newViewport(dst, p)
	s := g.episode.State()

	g.drawSea(dst, v, p)
	g.drawPlatform(dst, v, g.episode.Platform())
	g.drawCraft(dst, v, s, p)
	if !g.gameOver {
		g.drawFlames(dst, v, s, p)
	}
	g.drawHUD(dst, s, p)

	if g.resetNotice > 0 {
		dst.DrawTextCenteredColored(hudRows+1, " OUT OF BOUNDS - craft returned to start ", core.ColorBrightYellow)
	}

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.gameOver:
		title := "CRASHED"
		if g.episode.Contact().InWater {
			title = "SPLASHDOWN"
		}
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Landings: %d  |  Press R to restart", g.score, g.landings))
	case g.status == sim.StatusLanded:
		hint := "Press Space to fly again"
		if g.mode == ModeAutopilot {
			hint = "Autopilot relaunching..."
		}
		g.drawCenteredMessage(dst, fmt.Sprintf("TOUCHDOWN  +%d", g.lastLanding), hint)
	}
}

// drawSea fills everything below the water line with animated waves.
func (g *Game) drawSea(dst *core.Screen, v viewport, p sim.Params) {
	top := v.row(p.WaterLine())
	phase := g.tickCount / 8
	for y := max(top, hudRows); y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			r, c := WaveChar, core.ColorBlue
			if (x+y+phase)%4 == 0 {
				r, c = SwellChar, core.ColorCyan
			}
			dst.SetColored(x, y, r, c)
		}
	}
}

// drawPlatform draws the landing pad with lit edges.
func (g *Game) drawPlatform(dst *core.Screen, v viewport, plat sim.Platform) {
	left := v.col(plat.Left())
	right := v.col(plat.Right())
	y := v.row(plat.Top())
	dst.DrawHLineColored(left, y, right-left+1, PlatformChar, core.ColorBrightWhite)
	dst.SetColored(left, y, PadEdgeChar, core.ColorBrightYellow)
	dst.SetColored(right, y, PadEdgeChar, core.ColorBrightYellow)
}

// drawCraft rasterizes the rotated body and marks the nose.
func (g *Game) drawCraft(dst *core.Screen, v viewport, s sim.State, p sim.Params) {
	color := core.ColorBrightWhite
	switch {
	case s.Crashed:
		color = core.ColorBrightRed
	case s.Landed:
		color = core.ColorBrightGreen
	}

	corners := sim.Corners(s, p)
	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}

	rad := sim.Radians(s.Angle)
	cos, sin := math.Cos(rad), math.Sin(rad)
	drawn := false
	for row := v.row(minY); row <= v.row(maxY); row++ {
		for col := v.col(minX); col <= v.col(maxX); col++ {
			wx, wy := v.world(col, row)
			dx, dy := wx-s.X, wy-s.Y
			// Inverse rotation into the craft frame
			lx := dx*cos + dy*sin
			ly := -dx*sin + dy*cos
			if math.Abs(lx) <= p.CraftWidth/2 && math.Abs(ly) <= p.CraftHeight/2 {
				dst.SetColored(col, row, CraftChar, color)
				drawn = true
			}
		}
	}
	if !drawn {
		dst.SetColored(v.col(s.X), v.row(s.Y), CraftChar, color)
	}

	nx, ny := toWorld(s, 0, -p.CraftHeight/2)
	dst.SetColored(v.col(nx), v.row(ny)-1, noseRune(s.Angle), color)
}

// noseRune picks a glyph pointing the way the nose points.
func noseRune(angle float64) rune {
	a := sim.NormalizeAngle(angle)
	switch {
	case a > 157.5 || a <= -157.5:
		return 'v'
	case a > 112.5:
		return '\\'
	case a > 67.5:
		return '>'
	case a > 22.5:
		return '/'
	case a > -22.5:
		return '^'
	case a > -67.5:
		return '\\'
	case a > -112.5:
		return '<'
	default:
		return '/'
	}
}

// flameOffset is where each thruster's exhaust shows, in the craft frame.
func flameOffset(t sim.Thruster, p sim.Params) (float64, float64) {
	w, h := p.CraftWidth/2, p.CraftHeight/2
	gap := p.CraftHeight / 2
	switch t {
	case sim.ThrusterBottomCenter:
		return 0, h + gap
	case sim.ThrusterBottomLeft:
		return -w, h + gap/2
	case sim.ThrusterBottomRight:
		return w, h + gap/2
	case sim.ThrusterUpperLeft:
		return -w - gap, -h + gap/2
	default:
		return w + gap, -h + gap/2
	}
}

// drawFlames draws flickering exhaust for the thrusters fired last tick.
func (g *Game) drawFlames(dst *core.Screen, v viewport, s sim.State, p sim.Params) {
	if g.status == sim.StatusLanded {
		return
	}
	for _, t := range sim.Thrusters() {
		if !s.Thrusters.Has(t) {
			continue
		}
		ox, oy := flameOffset(t, p)
		wx, wy := toWorld(s, ox, oy)
		r := flameRunes[g.rng.Intn(len(flameRunes))]
		c := flameColors[g.rng.Intn(len(flameColors))]
		dst.SetColored(v.col(wx), v.row(wy), r, c)
	}
}

// toWorld rotates a craft-frame offset into world coordinates.
func toWorld(s sim.State, x, y float64) (float64, float64) {
	rad := sim.Radians(s.Angle)
	cos, sin := math.Cos(rad), math.Sin(rad)
	return x*cos - y*sin + s.X, x*sin + y*cos + s.Y
}

// drawHUD draws score, velocities and attitude on the top row.
// Values within landing tolerance are green, the rest red.
func (g *Game) drawHUD(dst *core.Screen, s sim.State, p sim.Params) {
	x := 1
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}
	ok := func(good bool) core.Color {
		if good {
			return core.ColorBrightGreen
		}
		return core.ColorBrightRed
	}

	contact := sim.Inspect(s, g.episode.Platform(), p)
	angle := math.Mod(s.Angle, 360)
	if angle < 0 {
		angle += 360
	}

	put(fmt.Sprintf("SCORE %d", g.score), core.ColorBrightYellow)
	put(fmt.Sprintf("  LANDINGS %d", g.landings), core.ColorDefault)
	put("  VX ", core.ColorGray)
	put(fmt.Sprintf("%+.2f", s.VX), core.ColorDefault)
	put("  VY ", core.ColorGray)
	put(fmt.Sprintf("%+.2f", s.VY), ok(math.Abs(s.VY) < p.MaxLandingVelocity))
	put("  SPEED ", core.ColorGray)
	put(fmt.Sprintf("%.2f", contact.Speed), ok(contact.SpeedOK))
	put("  ANGLE ", core.ColorGray)
	put(fmt.Sprintf("%.0f°", angle), ok(contact.AngleOK))

	if g.mode == ModeAutopilot {
		label := "AUTOPILOT "
		dst.DrawTextColored(dst.Width()-len(label), 0, label, core.ColorBrightMagenta)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
