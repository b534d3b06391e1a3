package lander

import "math"

// MaxScore is the score of a perfect landing (zero vertical speed, upright).
const MaxScore = 1000

// Status is what Episode.Step reports to its caller.
type Status int

const (
	StatusPlaying      Status = iota
	StatusLanded              // Terminal: touched down within tolerance
	StatusCrashed             // Terminal: water, or platform out of tolerance
	StatusResetPlaying        // Craft left the playable area and was put back at the start
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLanded:
		return "landed"
	case StatusCrashed:
		return "crashed"
	case StatusResetPlaying:
		return "reset_playing"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the episode.
func (s Status) Terminal() bool {
	return s == StatusLanded || s == StatusCrashed
}

// Observation is the read-only view handed to automated pilots.
type Observation struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Angle      float64 `json:"angle"`
	AngularVel float64 `json:"angular_velocity"`
}

// Vector returns the observation as {x, y, vx, vy, angle, angular velocity}.
func (o Observation) Vector() [6]float64 {
	return [6]float64{o.X, o.Y, o.VX, o.VY, o.Angle, o.AngularVel}
}

// Episode owns one craft state and one fixed platform.
// It is not safe for concurrent use; each caller owns its own Episode.
type Episode struct {
	params   Params
	platform Platform
	state    State
	ticks    int
	resets   int
}

// NewEpisode creates an episode with the craft at its start position.
func NewEpisode(p Params) *Episode {
	e := &Episode{
		params:   p,
		platform: p.Platform(),
	}
	e.Reset()
	return e
}

// Reset puts the craft back at the start position at rest and clears
// thrusters and terminal flags.
func (e *Episode) Reset() {
	e.state = NewState(e.params.StartX, e.params.StartY)
	e.ticks = 0
}

// Step advances the episode by one tick.
//
// Leaving the playable area resets the craft and reports StatusResetPlaying.
// Once the episode is terminal, Step does nothing until Reset.
func (e *Episode) Step(in Intent) Status {
	if e.state.Terminal() {
		return e.status(e.Outcome())
	}

	e.ticks++
	if Integrate(&e.state, in, e.params) == SignalOutOfBounds {
		e.Reset()
		e.resets++
		return StatusResetPlaying
	}

	return e.status(Evaluate(&e.state, e.platform, e.params))
}

func (e *Episode) status(o Outcome) Status {
	switch o {
	case OutcomeLanded:
		return StatusLanded
	case OutcomeCrashed:
		return StatusCrashed
	default:
		return StatusPlaying
	}
}

// State returns a copy of the craft state.
func (e *Episode) State() State {
	return e.state
}

// Platform returns the landing platform.
func (e *Episode) Platform() Platform {
	return e.platform
}

// Params returns the params the episode was built with.
func (e *Episode) Params() Params {
	return e.params
}

// Outcome returns the current classification without advancing the episode.
func (e *Episode) Outcome() Outcome {
	switch {
	case e.state.Landed:
		return OutcomeLanded
	case e.state.Crashed:
		return OutcomeCrashed
	default:
		return OutcomePlaying
	}
}

// Ticks returns the number of ticks since the last reset.
func (e *Episode) Ticks() int {
	return e.ticks
}

// Resets returns how many times the craft was put back after leaving the
// playable area. Explicit calls to Reset are not counted.
func (e *Episode) Resets() int {
	return e.resets
}

// Observation returns the pilot's view of the craft.
func (e *Episode) Observation() Observation {
	s := e.state
	return Observation{
		X:          s.X,
		Y:          s.Y,
		VX:         s.VX,
		VY:         s.VY,
		Angle:      s.Angle,
		AngularVel: s.AngularVel,
	}
}

// Contact returns the evaluator's view of the current geometry.
func (e *Episode) Contact() Contact {
	return Inspect(e.state, e.platform, e.params)
}

// LandingScore returns the score of the current landing, or false if the
// craft has not landed.
func (e *Episode) LandingScore() (int, bool) {
	if !e.state.Landed {
		return 0, false
	}
	return Score(e.state, e.params), true
}

// Score rates a landing: MaxScore × (1 − |vy|/max velocity) × (1 − |angle|/max angle),
// truncated toward zero. The angle is normalized the same way the landing check
// sees it, and the result never drops below zero.
func Score(s State, p Params) int {
	vy := 1 - math.Abs(s.VY)/p.MaxLandingVelocity
	angle := 1 - math.Abs(NormalizeAngle(s.Angle))/p.MaxLandingAngle
	if vy <= 0 || angle <= 0 {
		return 0
	}
	return int(MaxScore * vy * angle)
}
