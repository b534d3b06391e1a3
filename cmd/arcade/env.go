package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/env"
)

var (
	flagMaxSteps int
	flagVerbose  bool
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Serve the lander control protocol on stdin/stdout",
	Long: `Run one lander episode driven by JSON lines on stdin. Each request
line gets exactly one response line on stdout. Logs go to stderr.

Requests:
  {"op":"reset"}
  {"op":"step","action":{"ul":0,"ur":0,"bl":0,"br":0,"b":1}}
  {"op":"step","mask":16}
  {"op":"observe"}
  {"op":"close"}

Action values above 0.5 fire a thruster. Mask bits 0..4 are the
upper-left, upper-right, bottom-left, bottom-right and bottom thrusters.

Examples:
  arcade env
  arcade env --max-steps 500 --difficulty easy
  python agent.py | arcade env`,
	Run: runEnv,
}

func init() {
	envCmd.Flags().IntVar(&flagMaxSteps, "max-steps", -1, "Truncate episodes after this many steps (0 = never, -1 = config value)")
	envCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request at debug level")
}

func runEnv(_ *cobra.Command, _ []string) {
	logger := newLogger("lander-env")

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

	logger.Debug("config loaded", "path", flagConfig, "difficulty", flagDifficulty)
	srv := env.NewServer(env.New(landerCfg.Params(), maxSteps), logger)
	// An interrupt is a normal way to end a session.
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newLogger builds a stderr logger; --verbose lowers the level to debug.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
