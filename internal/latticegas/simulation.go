package latticegas

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/spacemonkeygo/monkit/v3"

	"github.com/lox/latticemc/internal/ensemble"
	"github.com/lox/latticemc/internal/pcg"
	"github.com/lox/latticemc/internal/seedgen"
	"github.com/lox/latticemc/internal/statistics"
)

var mon = monkit.Package()

// DefaultMeasurements is the number of evenly spaced measurements per sample.
const DefaultMeasurements = 100

// ErrEmptyLattice is returned when a sample places no particles, leaving the
// mean square displacement undefined.
var ErrEmptyLattice = errors.New("lattice populated with zero particles")

// Config holds configuration for a diffusion-coefficient estimate
type Config struct {
	Size         int
	Density      float64
	Sweeps       int
	Measurements int
	Samples      int

	// Independent gives every sample its own worker generator from the
	// master. Otherwise one worker drives all samples in sequence.
	Independent bool
	Workers     int

	Logger *log.Logger
	Clock  quartz.Clock
}

// Validate checks the simulation parameters
func (c Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("invalid lattice size: %d", c.Size)
	}
	if !(c.Density > 0 && c.Density < 1) {
		return fmt.Errorf("density must be in (0,1), got %v", c.Density)
	}
	if c.Measurements <= 0 {
		return fmt.Errorf("invalid number of measurements: %d", c.Measurements)
	}
	if c.Sweeps < c.Measurements || c.Sweeps%c.Measurements != 0 {
		return fmt.Errorf("number of sweeps (%d) is not a multiple of the number of measurements (%d)",
			c.Sweeps, c.Measurements)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("invalid number of samples: %d", c.Samples)
	}
	return nil
}

// Period returns the number of sweeps between measurements.
func (c Config) Period() int {
	return c.Sweeps / c.Measurements
}

// Row is one line of the diffusion table.
type Row struct {
	Sweep  int
	MeanR2 float64 // <dr^2> over samples
	D      float64 // <dr^2> / (4t)
	ErrR2  float64
	ErrD   float64
}

// Result is the outcome of a diffusion-coefficient estimate.
type Result struct {
	Seeds     []seedgen.RunSeeds
	Particles []int // particles per sample
	Rows      []Row
	Elapsed   time.Duration
}

// Simulate runs cfg.Samples independent lattice populations, each evolved for
// cfg.Sweeps sweeps, and tabulates the mean square displacement.
func Simulate(ctx context.Context, cfg Config, master *seedgen.Master) (result *Result, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if master == nil {
		return nil, errors.New("nil master generator")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	start := clock.Now()
	series := statistics.NewSeries(cfg.Measurements)
	result = &Result{}

	if cfg.Independent {
		summary, err := ensemble.Execute(ctx,
			ensemble.Config{Runs: cfg.Samples, Workers: cfg.Workers, Logger: logger, Clock: clock},
			master,
			func(ctx context.Context, run ensemble.Run) (sampleResult, error) {
				return runSample(ctx, cfg, run.RNG)
			},
			func(_ ensemble.Run, s sampleResult) error {
				result.add(series, s)
				return nil
			})
		if err != nil {
			return nil, fmt.Errorf("diffusion: %w", err)
		}
		result.Seeds = summary.Seeds
	} else {
		seeds, rng := master.NextWorker()
		result.Seeds = []seedgen.RunSeeds{seeds}
		for sample := 0; sample < cfg.Samples; sample++ {
			s, err := runSample(ctx, cfg, rng)
			if err != nil {
				return nil, fmt.Errorf("diffusion: sample %d: %w", sample, err)
			}
			result.add(series, s)
			logger.Debug("Sample complete", "sample", sample+1, "particles", s.particles)
		}
	}

	result.Rows = tabulate(cfg, series)
	result.Elapsed = clock.Now().Sub(start)
	return result, nil
}

type sampleResult struct {
	particles int
	msd       []float64
}

func (r *Result) add(series statistics.Series, s sampleResult) {
	r.Particles = append(r.Particles, s.particles)
	for m, v := range s.msd {
		series.Add(m, v)
	}
}

func runSample(ctx context.Context, cfg Config, rng *pcg.PCG32) (sampleResult, error) {
	lattice := New(cfg.Size)
	n := lattice.Populate(rng, cfg.Density)
	if n == 0 {
		return sampleResult{}, ErrEmptyLattice
	}

	period := cfg.Period()
	msd := make([]float64, 0, cfg.Measurements)
	for sweep := 1; sweep <= cfg.Sweeps; sweep++ {
		lattice.Sweep(rng)
		if sweep%period == 0 {
			if err := ctx.Err(); err != nil {
				return sampleResult{}, err
			}
			msd = append(msd, lattice.MeanSquareDisplacement())
		}
	}
	mon.Counter("lattice_sweeps").Inc(int64(cfg.Sweeps))

	return sampleResult{particles: n, msd: msd}, nil
}

func tabulate(cfg Config, series statistics.Series) []Row {
	period := cfg.Period()
	rows := make([]Row, len(series))
	for m := range series {
		acc := &series[m]
		sweep := (m + 1) * period
		mean := acc.Mean()
		errR2 := math.Sqrt(acc.PopulationVariance() / float64(cfg.Samples))
		t := 4 * float64(sweep)
		rows[m] = Row{
			Sweep:  sweep,
			MeanR2: mean,
			D:      mean / t,
			ErrR2:  errR2,
			ErrD:   errR2 / t,
		}
	}
	return rows
}
