// Package lander implements the Rocket Lander arcade game.
// The player fires five thrusters to set a craft down on a platform above
// the sea. Landings add to the run's score; a crash ends the run.
package lander

import (
	"math/rand"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/env"
	sim "github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// Mode selects who flies the craft.
type Mode int

const (
	ModeManual    Mode = iota // Keyboard control
	ModeAutopilot             // env.Autopilot flies, the player watches
)

// Game IDs.
const (
	ID          = "lander"
	AutopilotID = "lander_autopilot"
)

// Timing of on-screen notices, in ticks.
const (
	resetNoticeTicks = 90
	autoRelaunch     = 120 // Autopilot flies again this long after landing
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// tolerances from the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game implements registry.Game on top of one simulation episode.
type Game struct {
	mode    Mode
	cfg     config.LanderConfig
	episode *sim.Episode
	pilot   env.Pilot
	runtime core.RuntimeConfig
	rng     *rand.Rand // Flame flicker only; never touches the simulation

	status      sim.Status
	score       int // Sum of landing scores this run
	landings    int
	lastLanding int // Score of the most recent landing
	sinceLand   int // Ticks since the craft touched down
	resetNotice int // Ticks left to show the out-of-bounds notice
	gameOver    bool
	paused      bool
	tickCount   int
}

// New creates a game flown by the keyboard.
func New() *Game {
	return &Game{mode: ModeManual}
}

// NewAutopilot creates a game flown by the autopilot.
func NewAutopilot() *Game {
	return &Game{mode: ModeAutopilot}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeAutopilot {
		return AutopilotID
	}
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeAutopilot {
		return "Rocket Lander (Autopilot)"
	}
	return "Rocket Lander"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeAutopilot {
		return "Watch the autopilot set the craft down"
	}
	return "Fire the thrusters and touch down on the platform"
}

// Reset starts a new run: fresh episode, zero score.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadLander(configPath)
	if err != nil {
		cfg = config.DefaultLanderConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyLanderPreset(&cfg, difficultyPreset)
	}

	g.UseConfig(cfg)
}

// UseConfig restarts the run with an explicit configuration.
func (g *Game) UseConfig(cfg config.LanderConfig) {
	g.cfg = cfg
	p := cfg.Params()
	g.episode = sim.NewEpisode(p)
	if g.mode == ModeAutopilot {
		g.pilot = env.NewAutopilot(p)
	}
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))

	g.status = sim.StatusPlaying
	g.score = 0
	g.landings = 0
	g.lastLanding = 0
	g.sinceLand = 0
	g.resetNotice = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	if g.resetNotice > 0 {
		g.resetNotice--
	}

	// Parked on the platform until the next flight
	if g.status == sim.StatusLanded {
		g.sinceLand++
		relaunch := in.Has(core.ActionConfirm)
		if g.mode == ModeAutopilot && g.sinceLand >= autoRelaunch {
			relaunch = true
		}
		if relaunch {
			g.episode.Reset()
			g.status = sim.StatusPlaying
		}
		return core.StepResult{State: g.State()}
	}

	g.status = g.episode.Step(g.intent(in))

	switch g.status {
	case sim.StatusLanded:
		if score, ok := g.episode.LandingScore(); ok {
			g.lastLanding = score
			g.score += score
		}
		g.landings++
		g.sinceLand = 0
	case sim.StatusCrashed:
		g.gameOver = true
	case sim.StatusResetPlaying:
		g.resetNotice = resetNoticeTicks
	}

	return core.StepResult{State: g.State()}
}

// intent picks the thrusters for this tick from the keyboard or the autopilot.
func (g *Game) intent(in core.InputFrame) sim.Intent {
	if g.mode == ModeAutopilot {
		return g.pilot.Act(g.episode.Observation()).Intent()
	}
	keys := sim.KeyState{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Down:  in.Has(core.ActionDown),
		Shift: in.Has(core.ActionModifier),
	}
	return keys.Intent()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Landings: g.landings,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the games with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
	registry.Register(AutopilotID, func() registry.Game {
		return NewAutopilot()
	})
}
