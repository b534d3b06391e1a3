package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the default lander configuration.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		Physics: LanderPhysics{
			Gravity:             0.1,
			ThrustPower:         0.2,
			RotationSpeed:       2,
			LinearDrag:          0.98,
			AngularDrag:         0.93,
			SideThrustFactor:    0.5,
			PrecisionMultiplier: 0.7,
		},
		Landing: LanderLanding{
			MaxVelocity: 1.5,
			MaxAngle:    20,
			Tolerance:   5,
		},
		World: LanderWorld{
			Width:           800,
			Height:          600,
			BoundaryPadding: 50,
			WaterOffset:     100,
		},
		Craft: LanderCraft{
			Width:  20,
			Height: 40,
			StartX: 400,
			StartY: 100,
		},
		Platform: LanderPlatform{
			X:      400,
			Y:      480,
			Width:  100,
			Height: 10,
		},
		Env: LanderEnv{
			MaxSteps: 1000,
		},
		Controls: LanderControls{
			KeyHoldTicks: 8, // Bridges the gap between terminal key repeats at 60 fps
		},
	}
}

// DefaultYAML returns the embedded default lander YAML.
func DefaultYAML() []byte {
	return defaultLanderYAML
}
