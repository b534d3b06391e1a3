package lander

import (
	"fmt"
	"math"
)

// Params holds every tunable constant of the simulation.
// A Params value is fixed for the lifetime of an Episode.
type Params struct {
	// Physics
	Gravity             float64 // Added to vy every tick
	ThrustPower         float64 // Full-power impulse of the bottom-center thruster
	RotationSpeed       float64 // Angular impulse of an upper thruster, degrees/tick
	LinearDrag          float64 // vx, vy multiplier applied after integration
	AngularDrag         float64 // Angular velocity multiplier applied after integration
	SideThrustFactor    float64 // Power fraction of the bottom-left/right thrusters
	PrecisionMultiplier float64 // Bottom-center power fraction in precision mode

	// Landing
	MaxLandingVelocity float64 // Total speed must stay below this
	MaxLandingAngle    float64 // |normalized angle| must stay below this, degrees
	LandingTolerance   float64 // Vertical distance from the contact line that counts as touching

	// World
	ScreenW         float64
	ScreenH         float64
	BoundaryPadding float64 // Distance past the screen edge that triggers a reset
	WaterOffset     float64 // Water line sits this far above the bottom edge

	// Craft
	CraftWidth  float64
	CraftHeight float64
	StartX      float64
	StartY      float64

	// Platform
	PlatformX      float64
	PlatformY      float64
	PlatformWidth  float64
	PlatformHeight float64
}

// DefaultParams returns the classic lander tuning on an 800x600 world.
func DefaultParams() Params {
	return Params{
		Gravity:             0.1,
		ThrustPower:         0.2,
		RotationSpeed:       2,
		LinearDrag:          0.98,
		AngularDrag:         0.93,
		SideThrustFactor:    0.5,
		PrecisionMultiplier: 0.7,

		MaxLandingVelocity: 1.5,
		MaxLandingAngle:    20,
		LandingTolerance:   5,

		ScreenW:         800,
		ScreenH:         600,
		BoundaryPadding: 50,
		WaterOffset:     100,

		CraftWidth:  20,
		CraftHeight: 40,
		StartX:      400,
		StartY:      100,

		PlatformX:      400,
		PlatformY:      480,
		PlatformWidth:  100,
		PlatformHeight: 10,
	}
}

// WaterLine returns the y-coordinate below which the craft is in the water.
func (p Params) WaterLine() float64 {
	return p.ScreenH - p.WaterOffset
}

// Platform returns the landing platform described by the params.
func (p Params) Platform() Platform {
	return Platform{
		X:      p.PlatformX,
		Y:      p.PlatformY,
		Width:  p.PlatformWidth,
		Height: p.PlatformHeight,
	}
}

// Validate reports the first value that would let the simulation
// produce non-finite state or an unplayable world.
func (p Params) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"gravity", p.Gravity},
		{"thrust_power", p.ThrustPower},
		{"rotation_speed", p.RotationSpeed},
		{"linear_drag", p.LinearDrag},
		{"angular_drag", p.AngularDrag},
		{"side_thrust_factor", p.SideThrustFactor},
		{"precision_multiplier", p.PrecisionMultiplier},
		{"max_landing_velocity", p.MaxLandingVelocity},
		{"max_landing_angle", p.MaxLandingAngle},
		{"landing_tolerance", p.LandingTolerance},
		{"screen_w", p.ScreenW},
		{"screen_h", p.ScreenH},
		{"boundary_padding", p.BoundaryPadding},
		{"water_offset", p.WaterOffset},
		{"craft_width", p.CraftWidth},
		{"craft_height", p.CraftHeight},
		{"start_x", p.StartX},
		{"start_y", p.StartY},
		{"platform_x", p.PlatformX},
		{"platform_y", p.PlatformY},
		{"platform_width", p.PlatformWidth},
		{"platform_height", p.PlatformHeight},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("lander: %s must be finite, got %v", f.name, f.val)
		}
	}

	positive := []struct {
		name string
		val  float64
	}{
		{"max_landing_velocity", p.MaxLandingVelocity},
		{"max_landing_angle", p.MaxLandingAngle},
		{"landing_tolerance", p.LandingTolerance},
		{"screen_w", p.ScreenW},
		{"screen_h", p.ScreenH},
		{"craft_width", p.CraftWidth},
		{"craft_height", p.CraftHeight},
		{"platform_width", p.PlatformWidth},
	}
	for _, f := range positive {
		if f.val <= 0 {
			return fmt.Errorf("lander: %s must be positive, got %v", f.name, f.val)
		}
	}

	if p.LinearDrag < 0 || p.LinearDrag > 1 {
		return fmt.Errorf("lander: linear_drag must be in [0, 1], got %v", p.LinearDrag)
	}
	if p.AngularDrag < 0 || p.AngularDrag > 1 {
		return fmt.Errorf("lander: angular_drag must be in [0, 1], got %v", p.AngularDrag)
	}
	if p.BoundaryPadding < 0 {
		return fmt.Errorf("lander: boundary_padding must not be negative, got %v", p.BoundaryPadding)
	}
	if p.WaterOffset < 0 || p.WaterOffset >= p.ScreenH {
		return fmt.Errorf("lander: water_offset must be in [0, screen_h), got %v", p.WaterOffset)
	}
	return nil
}
