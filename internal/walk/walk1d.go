package walk

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/latticemc/internal/ensemble"
	"github.com/lox/latticemc/internal/seedgen"
	"github.com/lox/latticemc/internal/statistics"
)

// Config1D holds configuration for a 1D walk ensemble
type Config1D struct {
	Runs    int
	Steps   int
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Validate checks the ensemble parameters
func (c Config1D) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("invalid number of runs: %d", c.Runs)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("invalid number of steps per run: %d", c.Steps)
	}
	return nil
}

// Trajectory1D is the position after every step of one run.
type Trajectory1D []int64

// Result1D is the ensemble average of x^2 at every time.
type Result1D struct {
	Summary    ensemble.Summary
	MeanSquare []float64 // <x^2(t)>, t = 0..Steps-1
}

// Walk1D walks a single trajectory of n steps.
func Walk1D(rng Uniform, n int) Trajectory1D {
	traj := make(Trajectory1D, n)
	var x int64
	for i := range traj {
		x += Step1D(rng.Float64())
		traj[i] = x
	}
	return traj
}

// Simulate1D runs the ensemble. Each finished trajectory is passed to record
// in run order (record may be nil).
func Simulate1D(ctx context.Context, cfg Config1D, master *seedgen.Master,
	record func(run int, traj Trajectory1D) error) (*Result1D, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if master == nil {
		return nil, errors.New("nil master generator")
	}

	series := statistics.NewSeries(cfg.Steps)
	summary, err := ensemble.Execute(ctx,
		ensemble.Config{Runs: cfg.Runs, Workers: cfg.Workers, Logger: cfg.Logger, Clock: cfg.Clock},
		master,
		func(ctx context.Context, run ensemble.Run) (Trajectory1D, error) {
			return Walk1D(run.RNG, cfg.Steps), nil
		},
		func(run ensemble.Run, traj Trajectory1D) error {
			for t, x := range traj {
				series.Add(t, float64(x*x))
			}
			if record != nil {
				return record(run.Index, traj)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("1d walk: %w", err)
	}

	return &Result1D{Summary: summary, MeanSquare: series.Means()}, nil
}
