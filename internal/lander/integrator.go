package lander

import "math"

// Signal is the integrator's verdict for a tick.
type Signal int

const (
	SignalPlaying     Signal = iota // Craft is inside the playable area
	SignalOutOfBounds               // Craft left the screen plus padding; the episode must reset
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalPlaying:
		return "playing"
	case SignalOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Integrate advances s by one fixed tick:
// gravity, thruster impulses, explicit Euler position update, drag, bounds check.
func Integrate(s *State, in Intent, p Params) Signal {
	s.Thrusters = in.Thrusters

	s.VY += p.Gravity

	applyThrusters(s, in, p)

	s.X += s.VX
	s.Y += s.VY
	s.Angle += s.AngularVel

	s.VX *= p.LinearDrag
	s.VY *= p.LinearDrag
	s.AngularVel *= p.AngularDrag

	if OutOfBounds(*s, p) {
		return SignalOutOfBounds
	}
	return SignalPlaying
}

// applyThrusters adds each active thruster's impulse. Impulses are additive,
// so the order of application does not matter.
func applyThrusters(s *State, in Intent, p Params) {
	rad := Radians(s.Angle)
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	if in.Thrusters.Has(ThrusterBottomCenter) {
		mult := 1.0
		if in.Precision {
			mult = p.PrecisionMultiplier
		}
		s.VY -= cos * p.ThrustPower * mult
		s.VX += sin * p.ThrustPower * mult
	}

	if in.Thrusters.Has(ThrusterBottomLeft) {
		s.VY -= cos * p.ThrustPower * p.SideThrustFactor
		s.VX += sin * p.ThrustPower * p.SideThrustFactor
		s.AngularVel += p.RotationSpeed * p.SideThrustFactor
	}

	if in.Thrusters.Has(ThrusterBottomRight) {
		s.VY -= cos * p.ThrustPower * p.SideThrustFactor
		s.VX += sin * p.ThrustPower * p.SideThrustFactor
		s.AngularVel -= p.RotationSpeed * p.SideThrustFactor
	}

	if in.Thrusters.Has(ThrusterUpperLeft) {
		s.AngularVel += p.RotationSpeed
	}

	if in.Thrusters.Has(ThrusterUpperRight) {
		s.AngularVel -= p.RotationSpeed
	}
}

// OutOfBounds reports whether the craft center is past the screen edge plus padding.
func OutOfBounds(s State, p Params) bool {
	pad := p.BoundaryPadding
	return s.Y < -pad ||
		s.Y > p.ScreenH+pad ||
		s.X < -pad ||
		s.X > p.ScreenW+pad
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
