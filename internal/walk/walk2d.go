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

// Config2D holds configuration for a 2D walk ensemble
type Config2D struct {
	Runs    int
	Steps   int
	Target  int // time at which each run's position is sampled
	Trace   bool
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Validate checks the ensemble parameters
func (c Config2D) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("invalid number of runs: %d", c.Runs)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("invalid number of steps per run: %d", c.Steps)
	}
	if c.Target <= 0 || c.Target > c.Steps {
		return fmt.Errorf("invalid target time %d: must be in [1, %d]", c.Target, c.Steps)
	}
	return nil
}

// Sample2D is one run's position at the target time.
type Sample2D struct {
	Run  int
	Time int
	Step int
	Pos  Point
}

// Trajectory2D is the position after every step of one run.
type Trajectory2D []Point

// Result2D summarises the sampled positions of the ensemble.
type Result2D struct {
	Summary ensemble.Summary
	X, Y    statistics.Sample
	Trace   Trajectory2D // run 0 only, when tracing was requested
}

type run2D struct {
	sample Sample2D
	trace  Trajectory2D
}

// Walk2D walks n steps from the origin. It returns the position reached at
// time target, and the full trajectory when trace is set.
func Walk2D(rng Uniform, n, target int, trace bool) (Sample2D, Trajectory2D) {
	var (
		pos    Point
		sample Sample2D
		traj   Trajectory2D
	)
	if trace {
		traj = make(Trajectory2D, 0, n)
	}
	for step := 0; step < n; step++ {
		pos = pos.Add(Step2D(rng.Float64()))
		time := step + 1
		if time == target {
			sample = Sample2D{Time: time, Step: step, Pos: pos}
		}
		if trace {
			traj = append(traj, pos)
		}
	}
	return sample, traj
}

// Simulate2D runs the ensemble. Each run's sample is passed to record in run
// order (record may be nil).
func Simulate2D(ctx context.Context, cfg Config2D, master *seedgen.Master,
	record func(Sample2D) error) (*Result2D, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if master == nil {
		return nil, errors.New("nil master generator")
	}

	res := &Result2D{}
	summary, err := ensemble.Execute(ctx,
		ensemble.Config{Runs: cfg.Runs, Workers: cfg.Workers, Logger: cfg.Logger, Clock: cfg.Clock},
		master,
		func(ctx context.Context, run ensemble.Run) (run2D, error) {
			sample, traj := Walk2D(run.RNG, cfg.Steps, cfg.Target, cfg.Trace && run.Index == 0)
			sample.Run = run.Index
			return run2D{sample: sample, trace: traj}, nil
		},
		func(run ensemble.Run, r run2D) error {
			res.X.Add(float64(r.sample.Pos.X))
			res.Y.Add(float64(r.sample.Pos.Y))
			if r.trace != nil {
				res.Trace = r.trace
			}
			if record != nil {
				return record(r.sample)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("2d walk: %w", err)
	}

	res.Summary = summary
	return res, nil
}
