package main

import (
	"fmt"

	"github.com/lox/latticemc/internal/datafile"
	"github.com/lox/latticemc/internal/walk"
)

type Walk1DCmd struct {
	Runs      int    `short:"r" help:"Number of independent runs (overrides config)"`
	Steps     int    `short:"n" help:"Number of steps per run (overrides config)"`
	OutputDir string `short:"o" help:"Directory for the trajectory and <x^2> files (overrides config)"`
}

func (c *Walk1DCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	defer e.cancel()

	wc := e.cfg.Walk1D
	if c.Runs != 0 {
		wc.Runs = c.Runs
	}
	if c.Steps != 0 {
		wc.Steps = c.Steps
	}
	if c.OutputDir != "" {
		wc.OutputDir = c.OutputDir
	}

	cfg := walk.Config1D{
		Runs:    wc.Runs,
		Steps:   wc.Steps,
		Workers: e.cfg.Parallel.Workers,
		Logger:  e.logger,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	trajFile, err := datafile.Create(wc.OutputDir, datafile.Walk1DTrajectories)
	if err != nil {
		return err
	}
	defer trajFile.Discard()

	e.logger.Info("Starting 1D random walks", "runs", cfg.Runs, "steps", cfg.Steps)

	res, err := walk.Simulate1D(e.ctx, cfg, e.cfg.NewMaster(), func(_ int, traj walk.Trajectory1D) error {
		return datafile.WriteTrajectory1D(trajFile, traj)
	})
	if err != nil {
		return err
	}
	if err := trajFile.Close(); err != nil {
		return err
	}

	meanFile, err := datafile.Create(wc.OutputDir, datafile.Walk1DMeanSquare)
	if err != nil {
		return err
	}
	if err := datafile.WriteMeanSquare(meanFile, res.MeanSquare); err != nil {
		meanFile.Discard()
		return fmt.Errorf("writing %s: %w", meanFile.Name(), err)
	}
	if err := meanFile.Close(); err != nil {
		return err
	}

	s := newSummary("1D random walk")
	s.add("runs", "%d", cfg.Runs)
	s.add("steps per run", "%d", cfg.Steps)
	s.add("<x^2> at final step", "%g", res.MeanSquare[len(res.MeanSquare)-1])
	s.file(trajFile.Name())
	s.file(meanFile.Name())
	return s.render(e.out, res.Summary.Elapsed)
}
