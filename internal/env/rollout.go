package env

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// EpisodeResult summarizes one finished rollout episode.
type EpisodeResult struct {
	Index     int
	Status    lander.Status
	Truncated bool
	Score     int
	Steps     int
	Resets    int
	StartX    float64
	StartY    float64
}

// RolloutConfig controls a batch of headless episodes.
type RolloutConfig struct {
	Params   lander.Params
	MaxSteps int
	Episodes int
	Workers  int

	// Spread moves each episode's start position by up to this many world
	// units horizontally, and a quarter of it vertically. Offsets come from
	// Seed and the episode index, so results do not depend on Workers.
	Spread float64
	Seed   int64

	// NewPilot builds one pilot per worker.
	NewPilot func(p lander.Params) Pilot
}

// RunEpisode flies one episode to the end with the given pilot.
func RunEpisode(ctx context.Context, e *Env, pilot Pilot) (EpisodeResult, error) {
	res := e.Reset()
	for !e.Over() {
		if err := ctx.Err(); err != nil {
			return EpisodeResult{}, err
		}
		var err error
		res, err = e.Step(pilot.Act(res.Observation))
		if err != nil {
			return EpisodeResult{}, err
		}
	}
	p := e.Params()
	return EpisodeResult{
		Status:    res.Status,
		Truncated: res.Truncated,
		Score:     res.Score,
		Steps:     res.Steps,
		Resets:    e.Resets(),
		StartX:    p.StartX,
		StartY:    p.StartY,
	}, nil
}

// episodeParams returns the params for episode i.
func (c RolloutConfig) episodeParams(i int) lander.Params {
	p := c.Params
	if c.Spread <= 0 {
		return p
	}
	rng := rand.New(rand.NewSource(c.Seed + int64(i)))
	p.StartX += (rng.Float64()*2 - 1) * c.Spread
	p.StartY += (rng.Float64()*2 - 1) * c.Spread / 4
	return p
}

// Rollout runs cfg.Episodes independent episodes across cfg.Workers goroutines.
// Each episode gets its own Env. Results are ordered by episode index.
func Rollout(ctx context.Context, cfg RolloutConfig) ([]EpisodeResult, error) {
	if cfg.Episodes <= 0 {
		return nil, nil
	}
	if cfg.NewPilot == nil {
		return nil, errors.New("env: rollout needs a pilot")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Episodes {
		workers = cfg.Episodes
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make([]EpisodeResult, cfg.Episodes)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := cfg.episodeParams(i)
				res, err := RunEpisode(ctx, New(p, cfg.MaxSteps), cfg.NewPilot(p))
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("env: episode %d: %w", i, err)
						cancel()
					})
					continue
				}
				res.Index = i
				results[i] = res
			}
		}()
	}

feed:
	for i := 0; i < cfg.Episodes; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates rollout results.
type Summary struct {
	Episodes  int
	Landed    int
	Crashed   int
	Truncated int
	Best      int
	Mean      float64 // Mean landing score over landed episodes
	Total     int     // Sum of landing scores
	MeanSteps float64
}

// Summarize aggregates results.
func Summarize(results []EpisodeResult) Summary {
	s := Summary{Episodes: len(results)}
	steps := 0
	for _, r := range results {
		steps += r.Steps
		switch {
		case r.Status == lander.StatusLanded:
			s.Landed++
			s.Total += r.Score
			if r.Score > s.Best {
				s.Best = r.Score
			}
		case r.Status == lander.StatusCrashed:
			s.Crashed++
		case r.Truncated:
			s.Truncated++
		}
	}
	if s.Landed > 0 {
		s.Mean = float64(s.Total) / float64(s.Landed)
	}
	if s.Episodes > 0 {
		s.MeanSteps = float64(steps) / float64(s.Episodes)
	}
	return s
}
