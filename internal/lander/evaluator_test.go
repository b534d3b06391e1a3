package lander

import (
	"math"
	"testing"
)

// touchingAt returns a state at x, angled, with its lowest bottom corner
// resting exactly on the platform's contact line.
func touchingAt(x, angle float64, p Params) State {
	s := State{X: x, Angle: angle}
	c := Corners(s, p)
	lowest := math.Max(c[CornerBottomRight].Y, c[CornerBottomLeft].Y)
	s.Y = p.Platform().Top() - lowest
	return s
}

func TestCornersUpright(t *testing.T) {
	p := DefaultParams()
	c := Corners(State{X: 400, Y: 100}, p)

	expected := [4]Vec2{
		{390, 80},  // top-left
		{410, 80},  // top-right
		{410, 120}, // bottom-right
		{390, 120}, // bottom-left
	}
	for i := range expected {
		if !almostEqual(c[i].X, expected[i].X) || !almostEqual(c[i].Y, expected[i].Y) {
			t.Errorf("corner %d = %v, expected %v", i, c[i], expected[i])
		}
	}

	bc := BottomCenter(c)
	if !almostEqual(bc.X, 400) || !almostEqual(bc.Y, 120) {
		t.Errorf("BottomCenter() = %v, expected (400, 120)", bc)
	}
}

func TestCornersRotated(t *testing.T) {
	p := DefaultParams()
	// 90 degrees: the nose points right, the tail points left
	c := Corners(State{X: 0, Y: 0, Angle: 90}, p)

	expected := [4]Vec2{
		{20, -10},
		{20, 10},
		{-20, 10},
		{-20, -10},
	}
	for i := range expected {
		if !almostEqual(c[i].X, expected[i].X) || !almostEqual(c[i].Y, expected[i].Y) {
			t.Errorf("corner %d = %v, expected %v", i, c[i], expected[i])
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{30, 30},
		{-30, -30},
		{180, 180},
		{-180, 180},
		{181, -179},
		{359, -1},
		{360, 0},
		{540, 180},
		{725, 5},
		{-725, -5},
	}

	for _, tc := range tests {
		if got := NormalizeAngle(tc.in); !almostEqual(got, tc.expected) {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestEvaluatePlayingInOpenAir(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	// Between the contact line and the water, but beside the platform
	for _, x := range []float64{100, 250, 600, 700} {
		s := State{X: x, Y: 470}
		for _, c := range Corners(s, p) {
			if c.Y >= p.WaterLine() {
				t.Fatalf("test setup: corner %v is in the water", c)
			}
		}
		if got := Evaluate(&s, plat, p); got != OutcomePlaying {
			t.Errorf("x=%v: Evaluate() = %v, expected playing", x, got)
		}
		if s.Terminal() {
			t.Errorf("x=%v: playing outcome should not set terminal flags", x)
		}
	}

	s := State{X: 400, Y: 300}
	if got := Evaluate(&s, plat, p); got != OutcomePlaying {
		t.Errorf("high above platform: Evaluate() = %v, expected playing", got)
	}
}

func TestEvaluatePerfectLanding(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()
	s := touchingAt(400, 0, p)

	if got := Evaluate(&s, plat, p); got != OutcomeLanded {
		t.Fatalf("Evaluate() = %v, expected landed", got)
	}
	if !s.Landed || s.Crashed {
		t.Errorf("flags: Landed=%v Crashed=%v", s.Landed, s.Crashed)
	}
	if score := Score(s, p); score != MaxScore {
		t.Errorf("Score() = %d, expected %d", score, MaxScore)
	}
}

func TestEvaluateTooFastAlwaysCrashes(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	for _, vy := range []float64{p.MaxLandingVelocity, 2, 10} {
		for _, angle := range []float64{0, 5, 45} {
			s := touchingAt(400, angle, p)
			s.VY = vy
			if got := Evaluate(&s, plat, p); got != OutcomeCrashed {
				t.Errorf("vy=%v angle=%v: Evaluate() = %v, expected crashed", vy, angle, got)
			}
			if s.Landed {
				t.Errorf("vy=%v angle=%v: crash must not set Landed", vy, angle)
			}
		}
	}
}

func TestEvaluateTiltedCrashes(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	tests := []struct {
		angle    float64
		expected Outcome
	}{
		{10, OutcomeLanded},
		{-10, OutcomeLanded},
		{359, OutcomeLanded}, // normalizes to -1
		{20, OutcomeCrashed},
		{-25, OutcomeCrashed},
		{335, OutcomeCrashed}, // normalizes to -25
	}

	for _, tc := range tests {
		s := touchingAt(400, tc.angle, p)
		if got := Evaluate(&s, plat, p); got != tc.expected {
			t.Errorf("angle=%v: Evaluate() = %v, expected %v", tc.angle, got, tc.expected)
		}
	}
}

func TestEvaluateWaterDominatesPlatform(t *testing.T) {
	p := DefaultParams()
	// Raise the water so it sits just below the contact line
	p.WaterOffset = p.ScreenH - (p.Platform().Top() + 2)
	plat := p.Platform()

	s := touchingAt(400, 0, p)
	s.Y += 3 // Bottom corners 3 units below the contact line: touching and wet

	c := Inspect(s, plat, p)
	if !c.TouchingPlatform || !c.InWater {
		t.Fatalf("test setup: touching=%v inWater=%v", c.TouchingPlatform, c.InWater)
	}
	if got := Evaluate(&s, plat, p); got != OutcomeCrashed {
		t.Errorf("Evaluate() = %v, expected crashed", got)
	}
}

func TestEvaluateWaterCrash(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	s := State{X: 100, Y: p.WaterLine() - p.CraftHeight/2 + 0.5}
	if got := Evaluate(&s, plat, p); got != OutcomeCrashed {
		t.Errorf("Evaluate() = %v, expected crashed", got)
	}
	if !s.Crashed {
		t.Error("water crash should set Crashed")
	}
}

func TestEvaluateContactTolerance(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()
	base := touchingAt(400, 0, p)

	tests := []struct {
		name     string
		dx, dy   float64
		expected Outcome
	}{
		{"on the line", 0, 0, OutcomeLanded},
		{"just above", 0, -4.9, OutcomeLanded},
		{"just below", 0, 4.9, OutcomeLanded},
		{"at tolerance above", 0, -p.LandingTolerance, OutcomePlaying},
		{"at tolerance below", 0, p.LandingTolerance, OutcomePlaying},
		{"left corner on right edge", plat.Right() + p.CraftWidth/2 - 400, 0, OutcomeLanded},
		{"past right edge", plat.Right() + p.CraftWidth/2 - 400 + 0.5, 0, OutcomePlaying},
		{"right corner on left edge", plat.Left() - p.CraftWidth/2 - 400, 0, OutcomeLanded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			s.X += tc.dx
			s.Y += tc.dy
			if got := Evaluate(&s, plat, p); got != tc.expected {
				t.Errorf("Evaluate() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEvaluateKeepsTerminalOutcome(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	landed := State{X: 100, Y: 100, Landed: true}
	if got := Evaluate(&landed, plat, p); got != OutcomeLanded {
		t.Errorf("landed state: Evaluate() = %v, expected landed", got)
	}

	crashed := touchingAt(400, 0, p)
	crashed.Crashed = true
	if got := Evaluate(&crashed, plat, p); got != OutcomeCrashed {
		t.Errorf("crashed state: Evaluate() = %v, expected crashed", got)
	}
	if crashed.Landed {
		t.Error("terminal flags must stay mutually exclusive")
	}
}

func TestInspectReportsAbovePlatform(t *testing.T) {
	p := DefaultParams()
	plat := p.Platform()

	if c := Inspect(State{X: 400, Y: 100}, plat, p); !c.AbovePlatform {
		t.Error("craft over the platform center should be above platform")
	}
	if c := Inspect(State{X: 100, Y: 100}, plat, p); c.AbovePlatform {
		t.Error("craft far left should not be above platform")
	}
}
