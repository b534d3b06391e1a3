// Package env is the headless control surface for automated pilots.
//
// It wraps a lander.Episode with a continuous action space, step truncation,
// a JSON-lines protocol for out-of-process controllers, a deterministic
// autopilot and a concurrent rollout runner.
package env

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// FireThreshold is the value above which an action component fires its thruster.
const FireThreshold = 0.5

// Action is one automated control input: a value per thruster.
// A thruster fires when its value is finite and above FireThreshold.
type Action struct {
	UL float64 `json:"ul"`
	UR float64 `json:"ur"`
	BL float64 `json:"bl"`
	BR float64 `json:"br"`
	B  float64 `json:"b"`
}

// NumMasks is the size of the discrete action space, one bit per thruster.
const NumMasks = 1 << lander.NumThrusters

// Intent translates the action to thrusters. Automated control never uses
// precision mode.
func (a Action) Intent() lander.Intent {
	var in lander.Intent
	for _, t := range lander.Thrusters() {
		in.Thrusters.Set(t, fires(a.value(t)))
	}
	return in
}

func (a Action) value(t lander.Thruster) float64 {
	switch t {
	case lander.ThrusterUpperLeft:
		return a.UL
	case lander.ThrusterUpperRight:
		return a.UR
	case lander.ThrusterBottomLeft:
		return a.BL
	case lander.ThrusterBottomRight:
		return a.BR
	case lander.ThrusterBottomCenter:
		return a.B
	default:
		return 0
	}
}

func (a *Action) set(t lander.Thruster, v float64) {
	switch t {
	case lander.ThrusterUpperLeft:
		a.UL = v
	case lander.ThrusterUpperRight:
		a.UR = v
	case lander.ThrusterBottomLeft:
		a.BL = v
	case lander.ThrusterBottomRight:
		a.BR = v
	case lander.ThrusterBottomCenter:
		a.B = v
	}
}

// NaN compares false, so only the infinity check is explicit.
func fires(v float64) bool {
	return !math.IsInf(v, 0) && v > FireThreshold
}

// ActionFromMask maps a discrete action index to an action. Bit i fires
// thruster i in lander.Thrusters() order (ul, ur, bl, br, b); bits above
// the thruster count are ignored.
func ActionFromMask(mask uint8) Action {
	var a Action
	for _, t := range lander.Thrusters() {
		if mask&(1<<uint(t)) != 0 {
			a.set(t, 1)
		}
	}
	return a
}

// Mask returns the discrete action index of the thrusters this action fires.
func (a Action) Mask() uint8 {
	var mask uint8
	for _, t := range lander.Thrusters() {
		if fires(a.value(t)) {
			mask |= 1 << uint(t)
		}
	}
	return mask
}
