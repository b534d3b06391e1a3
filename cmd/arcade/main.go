// arcade is a terminal rocket lander with a headless control interface.
//
// Usage:
//
//	arcade list              - List available modes
//	arcade play <game>       - Fly the lander (lander or lander_autopilot)
//	arcade menu              - Start menu to pick a mode interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a mode
//	arcade env               - Serve the JSON-lines control protocol on stdin/stdout
//	arcade rollout           - Fly headless autopilot episodes in parallel
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for flame effects
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom lander config YAML
//	--difficulty <preset> - Landing tolerance preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lander/internal/games/lander"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Rocket Lander - Land a rocket on a sea platform in your terminal",
	Long: `Rocket Lander is a terminal game about setting a rocket down on a
floating platform. Fly it yourself, watch the autopilot, or drive the
simulation from another program over a JSON-lines protocol.

Available commands:
  list     - Show all available modes
  play     - Fly a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  env      - Headless control protocol on stdin/stdout
  rollout  - Run autopilot episodes in parallel

Examples:
  arcade list
  arcade play lander
  arcade play lander --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores lander
  arcade rollout --episodes 100 --workers 8`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(rolloutCmd)
}
