// Package lander implements the rocket lander simulation core: the craft's
// kinematic state, the per-tick physics integrator, the landing evaluator and
// the episode controller that ties them together.
//
// The package has no rendering or input dependencies. The interactive game and
// headless automated pilots drive the same Episode through an Intent.
package lander

// Thruster identifies one of the craft's five thrusters.
type Thruster int

const (
	ThrusterUpperLeft Thruster = iota
	ThrusterUpperRight
	ThrusterBottomLeft
	ThrusterBottomRight
	ThrusterBottomCenter

	// NumThrusters is the number of thrusters on the craft.
	NumThrusters
)

// String returns the thruster's short name (ul, ur, bl, br, b).
func (t Thruster) String() string {
	switch t {
	case ThrusterUpperLeft:
		return "ul"
	case ThrusterUpperRight:
		return "ur"
	case ThrusterBottomLeft:
		return "bl"
	case ThrusterBottomRight:
		return "br"
	case ThrusterBottomCenter:
		return "b"
	default:
		return "unknown"
	}
}

// Thrusters lists every thruster in index order.
func Thrusters() []Thruster {
	return []Thruster{
		ThrusterUpperLeft,
		ThrusterUpperRight,
		ThrusterBottomLeft,
		ThrusterBottomRight,
		ThrusterBottomCenter,
	}
}

// ThrusterSet records which thrusters are firing.
type ThrusterSet [NumThrusters]bool

// Has reports whether thruster t is firing.
func (s ThrusterSet) Has(t Thruster) bool {
	if t < 0 || t >= NumThrusters {
		return false
	}
	return s[t]
}

// Set turns thruster t on or off.
func (s *ThrusterSet) Set(t Thruster, on bool) {
	if t < 0 || t >= NumThrusters {
		return
	}
	s[t] = on
}

// Any reports whether at least one thruster is firing.
func (s ThrusterSet) Any() bool {
	for _, on := range s {
		if on {
			return true
		}
	}
	return false
}

// Intent is the thruster input for a single tick.
type Intent struct {
	Thrusters ThrusterSet
	// Precision scales the bottom-center thruster by Params.PrecisionMultiplier.
	Precision bool
}

// Fire returns an intent with the given thrusters firing.
func Fire(thrusters ...Thruster) Intent {
	var in Intent
	for _, t := range thrusters {
		in.Thrusters.Set(t, true)
	}
	return in
}

// Vec2 is a point or vector in world coordinates (y grows downward).
type Vec2 struct {
	X, Y float64
}

// State is the craft's kinematic state. It is owned by a single Episode.
type State struct {
	X, Y       float64 // Center position
	VX, VY     float64 // Velocity in units per tick
	Angle      float64 // Degrees, 0 = nose up, not wrapped
	AngularVel float64 // Degrees per tick

	Thrusters ThrusterSet // Thrusters applied on the last tick

	Landed  bool
	Crashed bool
}

// NewState returns a state at rest at (x, y).
func NewState(x, y float64) State {
	return State{X: x, Y: y}
}

// Terminal reports whether the state has landed or crashed.
func (s State) Terminal() bool {
	return s.Landed || s.Crashed
}

// Platform is the landing pad. Its top edge is the contact line.
type Platform struct {
	X, Y          float64 // Center
	Width, Height float64
}

// Left returns the x-coordinate of the left edge.
func (p Platform) Left() float64 {
	return p.X - p.Width/2
}

// Right returns the x-coordinate of the right edge.
func (p Platform) Right() float64 {
	return p.X + p.Width/2
}

// Top returns the y-coordinate of the contact line.
func (p Platform) Top() float64 {
	return p.Y - p.Height/2
}
