package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start flying the specified mode.

Controls:
  Left/Right       - Fire the lower side thrusters
  Down             - Fire the main engine
  Shift+Left/Right - Fire the upper side thrusters
  Shift+Down       - Fire the main engine at low power
  Space/Enter      - Fly again after a landing
  P                - Pause
  R                - Restart (after a crash)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Touch down at up to 2.0 speed and 25 degrees of tilt
  normal - The default 1.5 speed and 20 degrees
  hard   - Only 1.0 speed and 12 degrees
  fixed  - Keep the tolerances from the config file

Examples:
  arcade play lander
  arcade play lander --difficulty easy
  arcade play lander_autopilot
  arcade play lander --config ./my-lander.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	landerCfg, err := loadLanderConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := terminalConfig(landerCfg)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadLanderConfig loads and validates the lander config selected on the
// command line, applies the difficulty preset and hands both choices to
// the lander games so every Reset sees the same settings.
func loadLanderConfig() (config.LanderConfig, error) {
	cfg, err := config.LoadLander(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyLanderPreset(&cfg, preset)
	}

	lander.SetConfigPath(flagConfig)
	lander.SetDifficultyPreset(flagDifficulty)
	return cfg, nil
}

// terminalConfig builds the runtime config from the terminal size and
// global flags.
func terminalConfig(landerCfg config.LanderConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		KeyHold:  landerCfg.Controls.KeyHoldTicks,
	}
}
