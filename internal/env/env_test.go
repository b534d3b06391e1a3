package env

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

func TestActionIntentThreshold(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		expected []lander.Thruster
	}{
		{"zero", Action{}, nil},
		{"at threshold", Action{B: 0.5}, nil},
		{"above threshold", Action{B: 0.50001}, []lander.Thruster{lander.ThrusterBottomCenter}},
		{"negative", Action{UL: -1}, nil},
		{"nan", Action{UL: math.NaN(), UR: math.NaN()}, nil},
		{"inf", Action{BL: math.Inf(1), BR: math.Inf(-1)}, nil},
		{
			"all on",
			Action{UL: 1, UR: 1, BL: 1, BR: 1, B: 1},
			[]lander.Thruster{
				lander.ThrusterUpperLeft,
				lander.ThrusterUpperRight,
				lander.ThrusterBottomLeft,
				lander.ThrusterBottomRight,
				lander.ThrusterBottomCenter,
			},
		},
		{"mixed garbage", Action{UL: math.NaN(), UR: math.Inf(1), BR: 0.9}, []lander.Thruster{lander.ThrusterBottomRight}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.action.Intent()

			var expected lander.ThrusterSet
			for _, th := range tc.expected {
				expected.Set(th, true)
			}
			if in.Thrusters != expected {
				t.Errorf("thrusters = %v, expected %v", in.Thrusters, expected)
			}
			if in.Precision {
				t.Error("automated actions never use precision mode")
			}
		})
	}
}

func TestNonFiniteActionsKeepStateFinite(t *testing.T) {
	e := New(lander.DefaultParams(), 0)
	garbage := Action{UL: math.NaN(), UR: math.Inf(1), BL: math.Inf(-1), BR: math.NaN(), B: math.NaN()}

	for i := 0; i < 100; i++ {
		res, err := e.Step(garbage)
		if err != nil {
			t.Fatalf("Step() error: %v", err)
		}
		for _, v := range res.Observation.Vector() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("tick %d: observation not finite: %v", i, res.Observation)
			}
		}
		if e.episode.State().Thrusters.Any() {
			t.Fatalf("tick %d: non-finite action fired a thruster", i)
		}
	}
}

func TestActionFromMask(t *testing.T) {
	tests := []struct {
		mask     uint8
		expected Action
	}{
		{0, Action{}},
		{1, Action{UL: 1}},
		{2, Action{UR: 1}},
		{4, Action{BL: 1}},
		{8, Action{BR: 1}},
		{16, Action{B: 1}},
		{20, Action{BL: 1, B: 1}},
		{31, Action{UL: 1, UR: 1, BL: 1, BR: 1, B: 1}},
		{33, Action{UL: 1}},
	}

	for _, tc := range tests {
		got := ActionFromMask(tc.mask)
		if got != tc.expected {
			t.Errorf("ActionFromMask(%d) = %+v, expected %+v", tc.mask, got, tc.expected)
		}
		if got.Mask() != tc.mask%NumMasks {
			t.Errorf("ActionFromMask(%d).Mask() = %d", tc.mask, got.Mask())
		}
	}
}

func TestEnvTruncation(t *testing.T) {
	e := New(lander.DefaultParams(), 10)

	var res Result
	var err error
	for i := 1; i <= 10; i++ {
		res, err = e.Step(Action{})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if res.Steps != i {
			t.Errorf("Steps = %d, expected %d", res.Steps, i)
		}
		if i < 10 && res.Truncated {
			t.Fatalf("truncated early at step %d", i)
		}
	}

	if !res.Truncated || res.Done {
		t.Errorf("after 10 steps: truncated=%v done=%v, expected truncated only", res.Truncated, res.Done)
	}
	if res.Status != lander.StatusPlaying {
		t.Errorf("Status = %v, expected playing", res.Status)
	}

	if _, err := e.Step(Action{}); !errors.Is(err, ErrEpisodeOver) {
		t.Errorf("Step() after truncation error = %v, expected ErrEpisodeOver", err)
	}

	res = e.Reset()
	if res.Truncated || res.Steps != 0 {
		t.Errorf("Reset() = %+v", res)
	}
	if _, err := e.Step(Action{}); err != nil {
		t.Errorf("Step() after Reset: %v", err)
	}
}

func TestEnvStepAfterCrash(t *testing.T) {
	e := New(lander.DefaultParams(), 0)

	var res Result
	for !e.Over() {
		var err error
		res, err = e.Step(Action{})
		if err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if res.Status != lander.StatusCrashed || !res.Done {
		t.Fatalf("free fall = %+v, expected crashed", res)
	}
	if res.Score != 0 {
		t.Errorf("crash score = %d, expected 0", res.Score)
	}

	again, err := e.Step(Action{B: 1})
	if !errors.Is(err, ErrEpisodeOver) {
		t.Errorf("error = %v, expected ErrEpisodeOver", err)
	}
	if again != res {
		t.Errorf("Step() after crash changed the result: %+v -> %+v", res, again)
	}
	if e.Observe() != res {
		t.Errorf("Observe() = %+v, expected %+v", e.Observe(), res)
	}
}

func TestEnvObservationMatchesEpisode(t *testing.T) {
	e := New(lander.DefaultParams(), 0)
	res, err := e.Step(Action{B: 1})
	if err != nil {
		t.Fatal(err)
	}
	s := e.episode.State()
	if res.Observation.Y != s.Y || res.Observation.VY != s.VY {
		t.Errorf("observation %+v does not match state %+v", res.Observation, s)
	}
	if res.Observation.Y >= 100 {
		t.Errorf("main engine should lift the craft, y = %v", res.Observation.Y)
	}
}

func TestEnvResetsCountPerEpisode(t *testing.T) {
	p := lander.DefaultParams()
	p.StartY = -p.BoundaryPadding + 0.05 // main engine carries it past the top edge
	e := New(p, 0)

	for range 3 {
		res, err := e.Step(Action{B: 1})
		if err != nil {
			t.Fatal(err)
		}
		if res.Status != lander.StatusResetPlaying {
			t.Fatalf("status = %v, expected reset_playing", res.Status)
		}
	}
	if e.Resets() != 3 {
		t.Fatalf("Resets() = %d, expected 3", e.Resets())
	}

	e.Reset()
	if e.Resets() != 0 {
		t.Errorf("Resets() after Reset = %d, expected 0", e.Resets())
	}

	if _, err := e.Step(Action{B: 1}); err != nil {
		t.Fatal(err)
	}
	if e.Resets() != 1 {
		t.Errorf("Resets() in the second episode = %d, expected 1", e.Resets())
	}
}
