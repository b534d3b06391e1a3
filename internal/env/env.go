package env

import (
	"errors"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// ErrEpisodeOver is returned by Step after the episode ended or was truncated.
var ErrEpisodeOver = errors.New("env: episode is over, call Reset")

// Result is what a controller sees after a step.
type Result struct {
	Observation lander.Observation
	Status      lander.Status
	Done        bool // Landed or crashed
	Truncated   bool // Step budget exhausted before a terminal outcome
	Score       int  // Landing score, zero unless landed
	Steps       int  // Steps since the last Reset
}

// Env drives one episode for an automated pilot.
// It is owned by a single goroutine.
type Env struct {
	episode  *lander.Episode
	maxSteps int
	steps    int
	last     Result

	resetBase int // episode.Resets() when the current episode began
}

// New creates an environment. maxSteps <= 0 disables truncation.
func New(p lander.Params, maxSteps int) *Env {
	e := &Env{
		episode:  lander.NewEpisode(p),
		maxSteps: maxSteps,
	}
	e.Reset()
	return e
}

// Reset starts a new episode and returns its first result.
func (e *Env) Reset() Result {
	e.episode.Reset()
	e.resetBase = e.episode.Resets()
	e.steps = 0
	e.last = e.result(lander.StatusPlaying)
	return e.last
}

// Step applies one action for one tick.
func (e *Env) Step(a Action) (Result, error) {
	if e.Over() {
		return e.last, ErrEpisodeOver
	}

	e.steps++
	status := e.episode.Step(a.Intent())
	e.last = e.result(status)
	return e.last, nil
}

// Observe returns the latest result without advancing.
func (e *Env) Observe() Result {
	return e.last
}

// Over reports whether the episode is done or truncated.
func (e *Env) Over() bool {
	return e.last.Done || e.last.Truncated
}

// Resets returns how often the craft left the playable area and was put
// back since the last Reset.
func (e *Env) Resets() int {
	return e.episode.Resets() - e.resetBase
}

// Params returns the simulation parameters.
func (e *Env) Params() lander.Params {
	return e.episode.Params()
}

func (e *Env) result(status lander.Status) Result {
	r := Result{
		Observation: e.episode.Observation(),
		Status:      status,
		Done:        status.Terminal(),
		Steps:       e.steps,
	}
	if score, ok := e.episode.LandingScore(); ok {
		r.Score = score
	}
	if !r.Done && e.maxSteps > 0 && e.steps >= e.maxSteps {
		r.Truncated = true
	}
	return r
}
