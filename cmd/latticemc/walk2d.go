package main

import (
	"github.com/lox/latticemc/internal/datafile"
	"github.com/lox/latticemc/internal/walk"
)

type Walk2DCmd struct {
	Runs      int    `short:"r" help:"Number of independent runs (overrides config)"`
	Steps     int    `short:"n" help:"Number of steps per run (overrides config)"`
	Target    int    `short:"t" help:"Time at which positions are sampled (overrides config)"`
	NoTrace   bool   `help:"Do not write the trajectory of the first run"`
	OutputDir string `short:"o" help:"Directory for the sample and trace files (overrides config)"`
}

func (c *Walk2DCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	defer e.cancel()

	wc := e.cfg.Walk2D
	if c.Runs != 0 {
		wc.Runs = c.Runs
	}
	if c.Steps != 0 {
		wc.Steps = c.Steps
		if c.Target == 0 && wc.Target > wc.Steps {
			wc.Target = wc.Steps
		}
	}
	if c.Target != 0 {
		wc.Target = c.Target
	}
	if c.OutputDir != "" {
		wc.OutputDir = c.OutputDir
	}
	trace := *wc.Trace && !c.NoTrace

	cfg := walk.Config2D{
		Runs:    wc.Runs,
		Steps:   wc.Steps,
		Target:  wc.Target,
		Trace:   trace,
		Workers: e.cfg.Parallel.Workers,
		Logger:  e.logger,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sampleFile, err := datafile.Create(wc.OutputDir, datafile.Walk2DSamples)
	if err != nil {
		return err
	}
	defer sampleFile.Discard()

	e.logger.Info("Starting 2D random walks", "runs", cfg.Runs, "steps", cfg.Steps, "target", cfg.Target)

	res, err := walk.Simulate2D(e.ctx, cfg, e.cfg.NewMaster(), func(s walk.Sample2D) error {
		return datafile.WriteSample2D(sampleFile, s)
	})
	if err != nil {
		return err
	}
	if err := sampleFile.Close(); err != nil {
		return err
	}

	s := newSummary("2D random walk")
	s.add("runs", "%d", cfg.Runs)
	s.add("target time", "%d", cfg.Target)
	s.add("MEAN (x position)", "%g", res.X.Mean())
	s.add("MEAN (y position)", "%g", res.Y.Mean())
	s.add("x - VAR", "%g", res.X.Variance())
	s.add("y - VAR", "%g", res.Y.Variance())
	s.add("<r^2>", "%g", res.X.Variance()+res.Y.Variance())
	s.add("samples", "%d", res.X.N)
	s.file(sampleFile.Name())

	if trace {
		traceFile, err := datafile.Create(wc.OutputDir, datafile.Walk2DTrace)
		if err != nil {
			return err
		}
		if err := datafile.WriteTrace2D(traceFile, res.Trace); err != nil {
			traceFile.Discard()
			return err
		}
		if err := traceFile.Close(); err != nil {
			return err
		}
		s.file(traceFile.Name())
	}

	return s.render(e.out, res.Summary.Elapsed)
}
