package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const landerFile = "lander.yaml"

// LoadLander loads lander configuration.
// Search order: customPath -> ~/.arcade/configs/lander.yaml -> ./configs/lander.yaml -> embedded default
//
// Keys missing from a file keep their default values. The loaded config is
// validated before it is returned.
func LoadLander(customPath string) (LanderConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readLander(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(landerFile), filepath.Join("configs", landerFile)} {
		if path == "" {
			continue
		}
		if cfg, err := readLander(path); err == nil {
			if err := cfg.Validate(); err != nil {
				return cfg, fmt.Errorf("%s: %w", path, err)
			}
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseLander(defaultLanderYAML)
	if err != nil {
		return DefaultLanderConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseLander decodes YAML on top of the default configuration.
func ParseLander(data []byte) (LanderConfig, error) {
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readLander(path string) (LanderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultLanderConfig(), fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := ParseLander(data)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
