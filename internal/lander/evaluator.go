package lander

import "math"

// Outcome classifies an episode after a tick.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeLanded
	OutcomeCrashed
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeLanded:
		return "landed"
	case OutcomeCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Corner indices into the array returned by Corners.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// Corners returns the craft footprint: the four corners of its rectangle in
// the order top-left, top-right, bottom-right, bottom-left of the unrotated
// frame, rotated by the craft's angle and translated to its position.
func Corners(s State, p Params) [4]Vec2 {
	rad := Radians(s.Angle)
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	hw := p.CraftWidth / 2
	hh := p.CraftHeight / 2
	local := [4]Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}

	var out [4]Vec2
	for i, c := range local {
		out[i] = Vec2{
			X: c.X*cos - c.Y*sin + s.X,
			Y: c.X*sin + c.Y*cos + s.Y,
		}
	}
	return out
}

// BottomCenter returns the midpoint of the two tail corners.
func BottomCenter(corners [4]Vec2) Vec2 {
	br := corners[CornerBottomRight]
	bl := corners[CornerBottomLeft]
	return Vec2{X: (br.X + bl.X) / 2, Y: (br.Y + bl.Y) / 2}
}

// NormalizeAngle folds an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a > 180 {
		a -= 360
	}
	return a
}

// Speed returns the magnitude of the craft's velocity.
func Speed(s State) float64 {
	return math.Hypot(s.VX, s.VY)
}

// Contact holds the facts the evaluator derives from the craft geometry.
type Contact struct {
	Corners          [4]Vec2
	BottomCenter     Vec2
	AbovePlatform    bool // Bottom center is within the platform's horizontal span
	InWater          bool // Some corner is below the water line
	TouchingPlatform bool // A bottom corner is within tolerance of the contact line
	Speed            float64
	NormalizedAngle  float64
	SpeedOK          bool
	AngleOK          bool
}

// Inspect computes the contact facts for s against the platform.
func Inspect(s State, plat Platform, p Params) Contact {
	corners := Corners(s, p)
	bottom := BottomCenter(corners)
	left, right, top := plat.Left(), plat.Right(), plat.Top()

	c := Contact{
		Corners:       corners,
		BottomCenter:  bottom,
		AbovePlatform: left <= bottom.X && bottom.X <= right,
	}

	water := p.WaterLine()
	for _, corner := range corners {
		if corner.Y > water {
			c.InWater = true
			break
		}
	}

	for _, corner := range corners[CornerBottomRight:] {
		if left <= corner.X && corner.X <= right && math.Abs(corner.Y-top) < p.LandingTolerance {
			c.TouchingPlatform = true
			break
		}
	}

	c.Speed = Speed(s)
	c.NormalizedAngle = NormalizeAngle(s.Angle)
	c.SpeedOK = c.Speed < p.MaxLandingVelocity
	c.AngleOK = math.Abs(c.NormalizedAngle) < p.MaxLandingAngle
	return c
}

// Classify turns contact facts into an outcome. Water beats the platform,
// and a platform touch outside tolerance is always a crash.
func (c Contact) Classify() Outcome {
	if c.InWater {
		return OutcomeCrashed
	}
	if c.TouchingPlatform {
		if c.SpeedOK && c.AngleOK {
			return OutcomeLanded
		}
		return OutcomeCrashed
	}
	return OutcomePlaying
}

// Evaluate classifies s against the platform and latches the terminal flag
// on a landing or crash. A state that is already terminal keeps its outcome.
func Evaluate(s *State, plat Platform, p Params) Outcome {
	switch {
	case s.Landed:
		return OutcomeLanded
	case s.Crashed:
		return OutcomeCrashed
	}

	outcome := Inspect(*s, plat, p).Classify()
	switch outcome {
	case OutcomeLanded:
		s.Landed = true
	case OutcomeCrashed:
		s.Crashed = true
	}
	return outcome
}
