// Package config provides YAML-based lander configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// LanderConfig contains all configuration for the lander simulation.
type LanderConfig struct {
	Physics  LanderPhysics  `yaml:"physics"`
	Landing  LanderLanding  `yaml:"landing"`
	World    LanderWorld    `yaml:"world"`
	Craft    LanderCraft    `yaml:"craft"`
	Platform LanderPlatform `yaml:"platform"`
	Env      LanderEnv      `yaml:"env"`
	Controls LanderControls `yaml:"controls"`
}

// LanderPhysics defines per-tick physics constants.
type LanderPhysics struct {
	Gravity             float64 `yaml:"gravity"`
	ThrustPower         float64 `yaml:"thrust_power"`
	RotationSpeed       float64 `yaml:"rotation_speed"`       // Degrees per tick added by a rotation thruster
	LinearDrag          float64 `yaml:"linear_drag"`          // Velocity multiplier applied after each tick
	AngularDrag         float64 `yaml:"angular_drag"`         // Angular velocity multiplier applied after each tick
	SideThrustFactor    float64 `yaml:"side_thrust_factor"`   // Scale of the bottom-left/right thrusters
	PrecisionMultiplier float64 `yaml:"precision_multiplier"` // Main engine scale while precision is held
}

// LanderLanding defines the touchdown tolerances.
type LanderLanding struct {
	MaxVelocity float64 `yaml:"max_velocity"`
	MaxAngle    float64 `yaml:"max_angle"` // Degrees either side of upright
	Tolerance   float64 `yaml:"tolerance"` // Vertical contact distance from the platform top
}

// LanderWorld defines the playable area in world units.
type LanderWorld struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BoundaryPadding float64 `yaml:"boundary_padding"`
	WaterOffset     float64 `yaml:"water_offset"` // Water line is height minus this offset
}

// LanderCraft defines the craft body and its start position.
type LanderCraft struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// LanderPlatform defines the landing platform by its center and size.
type LanderPlatform struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LanderEnv defines the headless control surface.
type LanderEnv struct {
	MaxSteps int `yaml:"max_steps"` // Episode is truncated after this many steps
}

// LanderControls defines interactive input handling.
type LanderControls struct {
	KeyHoldTicks int `yaml:"key_hold_ticks"` // Ticks a key stays pressed after its last repeat
}

// Params converts the config into simulation parameters.
func (c LanderConfig) Params() lander.Params {
	return lander.Params{
		Gravity:             c.Physics.Gravity,
		ThrustPower:         c.Physics.ThrustPower,
		RotationSpeed:       c.Physics.RotationSpeed,
		LinearDrag:          c.Physics.LinearDrag,
		AngularDrag:         c.Physics.AngularDrag,
		SideThrustFactor:    c.Physics.SideThrustFactor,
		PrecisionMultiplier: c.Physics.PrecisionMultiplier,
		MaxLandingVelocity:  c.Landing.MaxVelocity,
		MaxLandingAngle:     c.Landing.MaxAngle,
		LandingTolerance:    c.Landing.Tolerance,
		ScreenW:             c.World.Width,
		ScreenH:             c.World.Height,
		BoundaryPadding:     c.World.BoundaryPadding,
		WaterOffset:         c.World.WaterOffset,
		CraftWidth:          c.Craft.Width,
		CraftHeight:         c.Craft.Height,
		StartX:              c.Craft.StartX,
		StartY:              c.Craft.StartY,
		PlatformX:           c.Platform.X,
		PlatformY:           c.Platform.Y,
		PlatformWidth:       c.Platform.Width,
		PlatformHeight:      c.Platform.Height,
	}
}

// Validate checks the simulation parameters and the non-physics settings.
func (c LanderConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Env.MaxSteps < 0 {
		return fmt.Errorf("config: env.max_steps must not be negative, got %d", c.Env.MaxSteps)
	}
	if c.Controls.KeyHoldTicks < 1 {
		return fmt.Errorf("config: controls.key_hold_ticks must be at least 1, got %d", c.Controls.KeyHoldTicks)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the loaded tolerances as they are
)

// ParseDifficulty validates a preset name from the command line.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyLanderPreset modifies the landing tolerances based on a difficulty preset.
func ApplyLanderPreset(cfg *LanderConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Landing.MaxVelocity = 2.0
		cfg.Landing.MaxAngle = 25
	case DifficultyNormal:
		def := DefaultLanderConfig().Landing
		cfg.Landing.MaxVelocity = def.MaxVelocity
		cfg.Landing.MaxAngle = def.MaxAngle
	case DifficultyHard:
		cfg.Landing.MaxVelocity = 1.0
		cfg.Landing.MaxAngle = 12
	}
}
