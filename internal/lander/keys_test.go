package lander

import "testing"

func TestKeyStateIntent(t *testing.T) {
	tests := []struct {
		name      string
		keys      KeyState
		firing    []Thruster
		precision bool
	}{
		{"nothing", KeyState{}, nil, false},
		{"left", KeyState{Left: true}, []Thruster{ThrusterBottomLeft}, false},
		{"right", KeyState{Right: true}, []Thruster{ThrusterBottomRight}, false},
		{"down", KeyState{Down: true}, []Thruster{ThrusterBottomCenter}, false},
		{"shift+left", KeyState{Left: true, Shift: true}, []Thruster{ThrusterUpperLeft}, true},
		{"shift+right", KeyState{Right: true, Shift: true}, []Thruster{ThrusterUpperRight}, true},
		{"shift+down", KeyState{Down: true, Shift: true}, []Thruster{ThrusterBottomCenter}, true},
		{"shift alone", KeyState{Shift: true}, nil, true},
		{
			"everything",
			KeyState{Left: true, Right: true, Down: true},
			[]Thruster{ThrusterBottomLeft, ThrusterBottomRight, ThrusterBottomCenter},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.keys.Intent()

			var expected ThrusterSet
			for _, th := range tc.firing {
				expected.Set(th, true)
			}
			if in.Thrusters != expected {
				t.Errorf("thrusters = %v, expected %v", in.Thrusters, expected)
			}
			if in.Precision != tc.precision {
				t.Errorf("precision = %v, expected %v", in.Precision, tc.precision)
			}
		})
	}
}

func TestThrusterNames(t *testing.T) {
	expected := []string{"ul", "ur", "bl", "br", "b"}
	for i, th := range Thrusters() {
		if th.String() != expected[i] {
			t.Errorf("Thruster(%d).String() = %q, expected %q", i, th.String(), expected[i])
		}
	}
	if int(NumThrusters) != len(expected) {
		t.Errorf("NumThrusters = %d, expected %d", int(NumThrusters), len(expected))
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero width", func(p *Params) { p.ScreenW = 0 }},
		{"negative landing velocity", func(p *Params) { p.MaxLandingVelocity = -1 }},
		{"drag above one", func(p *Params) { p.LinearDrag = 1.5 }},
		{"water above screen", func(p *Params) { p.WaterOffset = p.ScreenH }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
