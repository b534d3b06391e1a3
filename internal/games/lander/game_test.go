package lander

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/env"
	sim "github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
		KeyHold:  8,
	}
}

// newTestGame isolates the game from config files in the home or working directory.
func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	g.Reset(testRuntime())
	return g
}

// autopilotLanding flies one default episode headless and returns its score and length.
func autopilotLanding(t *testing.T) env.EpisodeResult {
	t.Helper()
	p := sim.DefaultParams()
	res, err := env.RunEpisode(context.Background(), env.New(p, 1000), env.NewAutopilot(p))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != sim.StatusLanded {
		t.Fatalf("reference autopilot run did not land: %+v", res)
	}
	return res
}

func stepUntil(g *Game, in core.InputFrame, limit int, done func() bool) int {
	for i := 1; i <= limit; i++ {
		g.Step(in)
		if done() {
			return i
		}
	}
	return -1
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{ID, AutopilotID} {
		if !registry.Exists(id) {
			t.Fatalf("%q is not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatal(err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}

	for _, info := range registry.List() {
		if info.Description == "" {
			t.Errorf("%q has no description", info.ID)
		}
	}
}

func TestFreeFallCrashEndsRun(t *testing.T) {
	g := newTestGame(t, New())

	ticks := stepUntil(g, core.NewInputFrame(), 1000, func() bool { return g.State().GameOver })
	if ticks < 0 {
		t.Fatal("free fall should crash")
	}

	state := g.State()
	if state.Score != 0 || state.Landings != 0 {
		t.Errorf("crash state = %+v, expected no score", state)
	}

	// Further input is ignored after the crash
	before := g.episode.State()
	g.Step(core.NewInputFrame(core.ActionDown, core.ActionConfirm))
	if g.episode.State() != before {
		t.Error("game over should freeze the craft")
	}
}

func TestAutopilotGameAccumulatesLandings(t *testing.T) {
	ref := autopilotLanding(t)
	g := newTestGame(t, NewAutopilot())
	none := core.NewInputFrame()

	ticks := stepUntil(g, none, 1000, func() bool { return g.State().Landings == 1 })
	if ticks != ref.Steps {
		t.Fatalf("landed after %d ticks, expected %d", ticks, ref.Steps)
	}
	if g.State().Score != ref.Score {
		t.Errorf("score = %d, expected %d", g.State().Score, ref.Score)
	}
	if g.State().GameOver {
		t.Fatal("a landing must not end the run")
	}

	// Parked until the player confirms
	g.Step(core.NewInputFrame(core.ActionConfirm))
	if g.status != sim.StatusPlaying {
		t.Fatalf("Confirm should launch a new flight, status = %v", g.status)
	}
	if g.episode.State() != sim.NewState(400, 100) {
		t.Errorf("new flight should start at the start position, got %+v", g.episode.State())
	}

	stepUntil(g, none, 1000, func() bool { return g.State().Landings == 2 })
	if g.State().Score != 2*ref.Score {
		t.Errorf("score after two landings = %d, expected %d", g.State().Score, 2*ref.Score)
	}
}

func TestAutopilotRelaunchesByItself(t *testing.T) {
	g := newTestGame(t, NewAutopilot())
	none := core.NewInputFrame()

	stepUntil(g, none, 1000, func() bool { return g.State().Landings == 1 })
	for i := 0; i < autoRelaunch; i++ {
		g.Step(none)
	}
	if g.status != sim.StatusPlaying {
		t.Errorf("autopilot should relaunch after %d ticks, status = %v", autoRelaunch, g.status)
	}
}

func TestManualLandingWaitsForConfirm(t *testing.T) {
	g := newTestGame(t, New())
	cfg := config.DefaultLanderConfig()
	cfg.Craft.StartY = 454 // One tick above the pad
	g.UseConfig(cfg)

	g.Step(core.NewInputFrame())
	state := g.State()
	if state.Landings != 1 || state.Score != 934 {
		t.Fatalf("state = %+v, expected one landing worth 934", state)
	}

	for i := 0; i < 500; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.status != sim.StatusLanded {
		t.Errorf("manual game should wait for Space, status = %v", g.status)
	}

	g.Step(core.NewInputFrame(core.ActionConfirm))
	if g.status != sim.StatusPlaying {
		t.Errorf("Confirm should relaunch, status = %v", g.status)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(core.NewInputFrame())

	g.Step(core.NewInputFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause should toggle on")
	}

	before := g.episode.State()
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame(core.ActionDown))
	}
	if g.episode.State() != before {
		t.Error("paused game should not advance")
	}

	g.Step(core.NewInputFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should toggle off")
	}
}

func TestKeyboardMapsToThrusters(t *testing.T) {
	g := newTestGame(t, New())

	tests := []struct {
		actions  []core.Action
		expected []sim.Thruster
	}{
		{[]core.Action{core.ActionDown}, []sim.Thruster{sim.ThrusterBottomCenter}},
		{[]core.Action{core.ActionLeft}, []sim.Thruster{sim.ThrusterBottomLeft}},
		{[]core.Action{core.ActionRight}, []sim.Thruster{sim.ThrusterBottomRight}},
		{[]core.Action{core.ActionLeft, core.ActionModifier}, []sim.Thruster{sim.ThrusterUpperLeft}},
		{[]core.Action{core.ActionRight, core.ActionModifier}, []sim.Thruster{sim.ThrusterUpperRight}},
	}

	for _, tc := range tests {
		g.Step(core.NewInputFrame(tc.actions...))

		var expected sim.ThrusterSet
		for _, th := range tc.expected {
			expected.Set(th, true)
		}
		if got := g.episode.State().Thrusters; got != expected {
			t.Errorf("actions %v fired %v, expected %v", tc.actions, got, expected)
		}
	}
}

func TestOutOfBoundsShowsNotice(t *testing.T) {
	g := newTestGame(t, New())
	cfg := config.DefaultLanderConfig()
	cfg.Craft.StartY = -49.95
	g.UseConfig(cfg)

	// Main engine at the top edge pushes the craft past the padding
	g.Step(core.NewInputFrame(core.ActionDown))
	if g.status != sim.StatusResetPlaying {
		t.Fatalf("status = %v, expected reset_playing", g.status)
	}
	if g.resetNotice == 0 {
		t.Error("out of bounds should show a notice")
	}
	if g.State().GameOver {
		t.Error("out of bounds must not end the run")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF BOUNDS") {
		t.Error("notice should be rendered")
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	SetDifficultyPreset("hard")
	g := newTestGame(t, New())
	if g.cfg.Landing.MaxVelocity != 1.0 || g.cfg.Landing.MaxAngle != 12 {
		t.Errorf("hard preset not applied: %+v", g.cfg.Landing)
	}

	SetDifficultyPreset("bogus")
	g.Reset(testRuntime())
	if g.cfg.Landing.MaxVelocity != 1.5 {
		t.Errorf("unknown preset should keep config tolerances: %+v", g.cfg.Landing)
	}
}
