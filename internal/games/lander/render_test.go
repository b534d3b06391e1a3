package lander

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
	sim "github.com/vovakirdan/tui-lander/internal/lander"
)

func TestRenderScene(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// HUD on the top row
	hud := screen.Row(0)
	for _, part := range []string{"SCORE 0", "LANDINGS 0", "VY", "ANGLE 0°"} {
		if !strings.Contains(hud, part) {
			t.Errorf("HUD %q missing %q", hud, part)
		}
	}

	// Sea fills the bottom row in blue or cyan
	for x := 0; x < screen.Width(); x++ {
		c := screen.GetCell(x, screen.Height()-1)
		if c.Rune != WaveChar && c.Rune != SwellChar {
			t.Fatalf("bottom row cell %d = %q, expected sea", x, c.Rune)
		}
		if c.Color != core.ColorBlue && c.Color != core.ColorCyan {
			t.Fatalf("bottom row cell %d color = %v", x, c.Color)
		}
	}

	// Platform spans x 350..450 of 800, i.e. columns 35..45
	v := newViewport(screen, sim.DefaultParams())
	y := v.row(475)
	for x := 36; x < 45; x++ {
		if screen.Get(x, y) != PlatformChar {
			t.Errorf("platform cell (%d, %d) = %q", x, y, screen.Get(x, y))
		}
	}
	if screen.Get(35, y) != PadEdgeChar || screen.Get(45, y) != PadEdgeChar {
		t.Errorf("platform edges = %q %q", screen.Get(35, y), screen.Get(45, y))
	}

	// Craft body around (400, 100)
	if !strings.ContainsRune(screen.String(), CraftChar) {
		t.Error("craft not drawn")
	}
}

func TestRenderFlamesOnlyWhenFiring(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(80, 24)

	g.Step(core.NewInputFrame())
	g.Render(screen)
	quiet := countFlames(screen)

	g.Step(core.NewInputFrame(core.ActionDown))
	g.Render(screen)
	if countFlames(screen) <= quiet {
		t.Error("main engine should draw exhaust")
	}
}

func countFlames(s *core.Screen) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			switch s.GetCell(x, y).Color {
			case core.ColorOrange, core.ColorRed, core.ColorYellow:
				n++
			}
		}
	}
	return n
}

func TestRenderGameOverMessage(t *testing.T) {
	g := newTestGame(t, New())
	stepUntil(g, core.NewInputFrame(), 1000, func() bool { return g.State().GameOver })

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "CRASHED") {
		t.Error("crash on the platform should say CRASHED")
	}
	if !strings.Contains(out, "Press R to restart") {
		t.Error("game over should explain how to restart")
	}
}

func TestRenderSplashdown(t *testing.T) {
	g := newTestGame(t, New())
	g.cfg.Craft.StartX = 100
	g.UseConfig(g.cfg)
	stepUntil(g, core.NewInputFrame(), 1000, func() bool { return g.State().GameOver })

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "SPLASHDOWN") {
		t.Error("crash in the water should say SPLASHDOWN")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(t, NewAutopilot())
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}, {10, 3}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen) // must not panic
	}
}

func TestNoseRune(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '^'},
		{360, '^'},
		{45, '/'},
		{90, '>'},
		{135, '\\'},
		{180, 'v'},
		{-45, '\\'},
		{-90, '<'},
		{-135, '/'},
		{270, '<'},
	}
	for _, tc := range tests {
		if got := noseRune(tc.angle); got != tc.expected {
			t.Errorf("noseRune(%v) = %q, expected %q", tc.angle, got, tc.expected)
		}
	}
}
