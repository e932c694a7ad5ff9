// Package ensemble runs a batch of independent simulation runs, each driven
// by its own worker generator minted from a shared master.
//
// Seeds are always drawn from the master on the calling goroutine, in run
// order, before any run starts. Results are handed back in run order, so the
// output of an ensemble does not depend on how many workers execute it.
package ensemble

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/spacemonkeygo/monkit/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lox/latticemc/internal/pcg"
	"github.com/lox/latticemc/internal/seedgen"
)

var mon = monkit.Package()

// Run identifies one member of the ensemble.
type Run struct {
	Index int
	Seeds seedgen.RunSeeds
	RNG   *pcg.PCG32
}

// Config holds configuration for an ensemble execution
type Config struct {
	Runs    int
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Summary describes a finished ensemble.
type Summary struct {
	Runs    int
	Seeds   []seedgen.RunSeeds
	Elapsed time.Duration
}

type indexed[T any] struct {
	index int
	value T
}

// Execute runs fn once per run and passes each result to emit in run order.
// emit is always called from the calling goroutine. The first error from fn
// or emit cancels the remaining runs and is returned.
func Execute[T any](ctx context.Context, cfg Config, master *seedgen.Master,
	fn func(context.Context, Run) (T, error), emit func(Run, T) error) (summary Summary, err error) {
	defer mon.Task()(&ctx)(&err)

	if cfg.Runs < 0 {
		return Summary{}, fmt.Errorf("invalid number of runs: %d", cfg.Runs)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
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
	seeds := make([]seedgen.RunSeeds, cfg.Runs)
	for i := range seeds {
		seeds[i] = master.RunSeeds()
	}
	mon.IntVal("ensemble_runs").Observe(int64(cfg.Runs))

	logger.Debug("Starting ensemble", "runs", cfg.Runs, "workers", workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make(chan indexed[T], workers)
	done := make(chan error, 1)

	go func() {
		for i, s := range seeds {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				timer := mon.Timer("run_duration").Start()
				value, err := fn(gctx, Run{Index: i, Seeds: s, RNG: seedgen.NewWorker(s)})
				timer.Stop()
				if err != nil {
					return fmt.Errorf("run %d: %w", i, err)
				}

				select {
				case results <- indexed[T]{index: i, value: value}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		done <- g.Wait()
		close(results)
	}()

	// reorder buffer: runs finish in any order but are emitted by index
	pending := make(map[int]T)
	next := 0
	var emitErr error
	for r := range results {
		if emitErr != nil {
			continue // drain so the dispatcher can exit
		}
		pending[r.index] = r.value
		for {
			value, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			run := Run{Index: next, Seeds: seeds[next]}
			if err := emit(run, value); err != nil {
				emitErr = fmt.Errorf("run %d: %w", next, err)
				cancel()
				break
			}
			mon.Counter("runs_completed").Inc(1)
			logger.Debug("Run complete", "run", next+1, "seedA", seeds[next].A, "seedB", seeds[next].B)
			next++
		}
	}

	runErr := <-done
	if emitErr != nil {
		return Summary{}, emitErr
	}
	if runErr != nil {
		return Summary{}, runErr
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	return Summary{
		Runs:    cfg.Runs,
		Seeds:   seeds,
		Elapsed: clock.Now().Sub(start),
	}, nil
}
