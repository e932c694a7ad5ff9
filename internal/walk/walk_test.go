package walk

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/latticemc/internal/seedgen"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestStep1D(t *testing.T) {
	assert.Equal(t, int64(-1), Step1D(0))
	assert.Equal(t, int64(-1), Step1D(0.5))
	assert.Equal(t, int64(1), Step1D(0.5000001))
	assert.Equal(t, int64(1), Step1D(0.9999999))
}

func TestStep2D(t *testing.T) {
	tests := []struct {
		u    float64
		want Point
	}{
		{0, East},
		{0.2499, East},
		{0.25, West},
		{0.4999, West},
		{0.5, North},
		{0.7499, North},
		{0.75, South},
		{0.9999, South},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Step2D(tt.u), "u=%v", tt.u)
	}
}

func TestWalk1D_FirstDefaultRun(t *testing.T) {
	_, worker := seedgen.Default().NextWorker()

	traj := Walk1D(worker, 8)
	assert.Equal(t, Trajectory1D{-1, -2, -1, 0, -1, 0, -1, -2}, traj)
}

func TestWalk2D_FirstDefaultRun(t *testing.T) {
	_, worker := seedgen.Default().NextWorker()

	sample, traj := Walk2D(worker, 8, 5, true)
	assert.Equal(t, Trajectory2D{
		{1, 0}, {0, 0}, {0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}, {3, 3},
	}, traj)
	assert.Equal(t, Sample2D{Time: 5, Step: 4, Pos: Point{1, 2}}, sample)
}

func TestWalk2D_NoTrace(t *testing.T) {
	_, worker := seedgen.Default().NextWorker()

	sample, traj := Walk2D(worker, 8, 8, false)
	assert.Nil(t, traj)
	assert.Equal(t, Point{3, 3}, sample.Pos)
}

func TestConfig1D_Validate(t *testing.T) {
	assert.NoError(t, Config1D{Runs: 1, Steps: 1}.Validate())
	assert.Error(t, Config1D{Runs: 0, Steps: 1}.Validate())
	assert.Error(t, Config1D{Runs: 1, Steps: 0}.Validate())
}

func TestConfig2D_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config2D
		wantErr bool
	}{
		{"valid", Config2D{Runs: 1, Steps: 10, Target: 10}, false},
		{"no runs", Config2D{Runs: 0, Steps: 10, Target: 5}, true},
		{"no steps", Config2D{Runs: 1, Steps: 0, Target: 1}, true},
		{"zero target", Config2D{Runs: 1, Steps: 10, Target: 0}, true},
		{"target past end", Config2D{Runs: 1, Steps: 10, Target: 11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimulate1D_SingleRun(t *testing.T) {
	var recorded []Trajectory1D
	res, err := Simulate1D(context.Background(),
		Config1D{Runs: 1, Steps: 8, Logger: quietLogger()},
		seedgen.Default(),
		func(run int, traj Trajectory1D) error {
			assert.Equal(t, len(recorded), run)
			recorded = append(recorded, traj)
			return nil
		})
	require.NoError(t, err)

	require.Len(t, recorded, 1)
	assert.Equal(t, []float64{1, 4, 1, 0, 1, 0, 1, 4}, res.MeanSquare)
	assert.Equal(t, seedgen.RunSeeds{A: 2187804205, B: 622185135}, res.Summary.Seeds[0])
}

func TestSimulate1D_Diffusive(t *testing.T) {
	const steps = 100
	res, err := Simulate1D(context.Background(),
		Config1D{Runs: 2000, Steps: steps, Workers: 4, Logger: quietLogger()},
		seedgen.Default(), nil)
	require.NoError(t, err)

	// <x^2(t)> = t for an unbiased walk
	assert.InDelta(t, float64(steps), res.MeanSquare[steps-1], 15)
	assert.InDelta(t, 1.0, res.MeanSquare[0], 1e-9)
}

func TestSimulate1D_RecordError(t *testing.T) {
	full := errors.New("disk full")
	_, err := Simulate1D(context.Background(),
		Config1D{Runs: 3, Steps: 4, Logger: quietLogger()},
		seedgen.Default(),
		func(int, Trajectory1D) error { return full })

	assert.ErrorIs(t, err, full)
}

func TestSimulate1D_NilMaster(t *testing.T) {
	_, err := Simulate1D(context.Background(), Config1D{Runs: 1, Steps: 1}, nil, nil)
	assert.Error(t, err)
}

func TestSimulate2D_SingleRun(t *testing.T) {
	var samples []Sample2D
	res, err := Simulate2D(context.Background(),
		Config2D{Runs: 1, Steps: 8, Target: 5, Trace: true, Logger: quietLogger()},
		seedgen.Default(),
		func(s Sample2D) error {
			samples = append(samples, s)
			return nil
		})
	require.NoError(t, err)

	require.Len(t, samples, 1)
	assert.Equal(t, Sample2D{Run: 0, Time: 5, Step: 4, Pos: Point{1, 2}}, samples[0])
	assert.Len(t, res.Trace, 8)
	assert.Equal(t, 1.0, res.X.Mean())
	assert.Equal(t, 2.0, res.Y.Mean())
}

func TestSimulate2D_Diffusive(t *testing.T) {
	const steps = 100
	cfg := Config2D{Runs: 2000, Steps: steps, Target: steps, Workers: 4, Logger: quietLogger()}

	res, err := Simulate2D(context.Background(), cfg, seedgen.Default(), nil)
	require.NoError(t, err)

	require.NoError(t, res.X.Validate())
	assert.Equal(t, 2000, res.X.N)
	assert.Nil(t, res.Trace)

	// each axis receives half the steps: Var(x) = Var(y) = t/2
	assert.InDelta(t, 0, res.X.Mean(), 1.5)
	assert.InDelta(t, 0, res.Y.Mean(), 1.5)
	assert.InDelta(t, steps/2.0, res.X.Variance(), 8)
	assert.InDelta(t, steps/2.0, res.Y.Variance(), 8)

	// same answer with a single worker
	cfg.Workers = 1
	again, err := Simulate2D(context.Background(), cfg, seedgen.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, res.X.Values, again.X.Values)
}
