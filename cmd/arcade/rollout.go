package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/env"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	sim "github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagEpisodes int
	flagWorkers  int
	flagSpread   float64
	flagSave     bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Fly autopilot episodes headless and summarize the results",
	Long: `Run independent autopilot episodes across a pool of workers. Each
episode gets its own simulation; start positions are scattered by
--spread using --seed, so the summary is the same for any --workers.

With --save, the total landing score is recorded as one run of
lander_autopilot under the player name "autopilot".

Examples:
  arcade rollout
  arcade rollout --episodes 500 --workers 8 --spread 120 --seed 7
  arcade rollout --difficulty hard --save`,
	Run: runRollout,
}

func init() {
	rolloutCmd.Flags().IntVarP(&flagEpisodes, "episodes", "n", 100, "Number of episodes to fly")
	rolloutCmd.Flags().IntVarP(&flagWorkers, "workers", "w", runtime.NumCPU(), "Worker goroutines")
	rolloutCmd.Flags().Float64Var(&flagSpread, "spread", 0, "Scatter start positions by up to this many world units")
	rolloutCmd.Flags().BoolVar(&flagSave, "save", false, "Record the landing total in the score store")
	rolloutCmd.Flags().IntVar(&flagMaxSteps, "max-steps", -1, "Truncate episodes after this many steps (0 = never, -1 = config value)")
	rolloutCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every episode at debug level")
}

func runRollout(_ *cobra.Command, _ []string) {
	logger := newLogger("lander-rollout")

	landerCfg, err := loadLanderConfig()
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	maxSteps := landerCfg.Env.MaxSteps
	if flagMaxSteps >= 0 {
		maxSteps = flagMaxSteps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := env.RolloutConfig{
		Params:   landerCfg.Params(),
		MaxSteps: maxSteps,
		Episodes: flagEpisodes,
		Workers:  flagWorkers,
		Spread:   flagSpread,
		Seed:     flagSeed,
		NewPilot: func(p sim.Params) env.Pilot { return env.NewAutopilot(p) },
	}

	logger.Info("rollout started", "episodes", cfg.Episodes, "workers", cfg.Workers, "spread", cfg.Spread)
	start := time.Now()
	results, err := env.Rollout(ctx, cfg)
	if err != nil {
		logger.Error("rollout failed", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("rollout finished", "elapsed", time.Since(start).Round(time.Millisecond))

	for _, r := range results {
		logger.Debug("episode",
			"index", r.Index,
			"status", r.Status,
			"score", r.Score,
			"steps", r.Steps,
			"resets", r.Resets,
			"start_x", r.StartX,
			"start_y", r.StartY,
		)
	}

	sum := env.Summarize(results)
	fmt.Printf("Episodes:  %d\n", sum.Episodes)
	fmt.Printf("Landed:    %d\n", sum.Landed)
	fmt.Printf("Crashed:   %d\n", sum.Crashed)
	fmt.Printf("Truncated: %d\n", sum.Truncated)
	fmt.Printf("Best:      %d\n", sum.Best)
	fmt.Printf("Mean:      %.1f\n", sum.Mean)
	fmt.Printf("Steps:     %.1f avg\n", sum.MeanSteps)

	if !flagSave || sum.Total == 0 {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveScore(storage.ScoreEntry{
		GameID:   lander.AutopilotID,
		Player:   "autopilot",
		Score:    sum.Total,
		Landings: sum.Landed,
	})
	if err != nil {
		logger.Warn("could not save rollout", "error", err)
		return
	}
	logger.Info("rollout saved", "id", id, "game", lander.AutopilotID, "score", sum.Total)
}
