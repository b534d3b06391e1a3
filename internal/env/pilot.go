package env

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// Pilot chooses an action from an observation.
type Pilot interface {
	Act(obs lander.Observation) Action
}

// PilotFunc adapts a function to the Pilot interface.
type PilotFunc func(obs lander.Observation) Action

// Act calls f(obs).
func (f PilotFunc) Act(obs lander.Observation) Action {
	return f(obs)
}

// Autopilot gains.
const (
	alignRadius   = 35.0 // Horizontal distance counted as over the pad
	alignSpeed    = 0.8  // Horizontal speed counted as settled
	flareAltitude = 40.0 // Below this the craft holds upright
	slowAltitude  = 150  // Below this an unaligned craft hovers instead of descending
	maxLean       = 20.0
	leanPerUnit   = 0.1 // Degrees of lean per unit of horizontal offset
	leanDamping   = 3.0 // Degrees of lean per unit of horizontal speed
	spinDamping   = 4.0
	deadband      = 1.5 // Degrees of attitude error tolerated before firing
	sinkRate      = 0.02
	minSink       = 0.6
	maxSink       = 3.0
)

// Autopilot is a deterministic attitude and descent-rate controller.
// It steers over the platform by leaning, keeps upright near the ground,
// and holds a sink rate that shrinks with altitude.
type Autopilot struct {
	params   lander.Params
	platform lander.Platform
}

// NewAutopilot creates an autopilot for the given world.
func NewAutopilot(p lander.Params) *Autopilot {
	return &Autopilot{params: p, platform: p.Platform()}
}

// Act implements Pilot.
func (a *Autopilot) Act(obs lander.Observation) Action {
	alt := a.platform.Top() - (obs.Y + a.params.CraftHeight/2)
	dx := a.platform.X - obs.X
	aligned := math.Abs(dx) < alignRadius && math.Abs(obs.VX) < alignSpeed

	lean := 0.0
	if alt > flareAltitude {
		lean = clamp(leanPerUnit*dx-leanDamping*obs.VX, -maxLean, maxLean)
	}

	var act Action

	u := lander.NormalizeAngle(obs.Angle) - lean + spinDamping*obs.AngularVel
	switch {
	case u > deadband:
		act.UR = 1
	case u < -deadband:
		act.UL = 1
	}

	target := clamp(sinkRate*alt, minSink, maxSink)
	if !aligned && alt < slowAltitude {
		target = 0
	}
	if obs.VY > target {
		act.B = 1
	}

	return act
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
