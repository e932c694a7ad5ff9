package main

import (
	"fmt"
	"path/filepath"

	"github.com/lox/latticemc/internal/datafile"
	"github.com/lox/latticemc/internal/latticegas"
)

type DiffusionCmd struct {
	Size         int     `short:"L" help:"Lattice side length (overrides config)"`
	Density      float64 `short:"d" help:"Target particle density in (0,1) (overrides config)"`
	Sweeps       int     `short:"s" help:"Number of sweeps per sample (overrides config)"`
	Measurements int     `short:"m" help:"Number of measurements per sample, must divide sweeps (overrides config)"`
	Samples      int     `short:"n" help:"Number of independent lattice populations (overrides config)"`
	Independent  bool    `help:"Draw a separate worker generator for every sample"`
	Output       string  `short:"o" help:"Output file for the diffusion table (overrides config)"`
}

func (c *DiffusionCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	defer e.cancel()

	dc := e.cfg.Diffusion
	if c.Size != 0 {
		dc.Size = c.Size
	}
	if c.Density != 0 {
		dc.Density = c.Density
	}
	if c.Sweeps != 0 {
		dc.Sweeps = c.Sweeps
	}
	if c.Measurements != 0 {
		dc.Measurements = c.Measurements
	}
	if c.Samples != 0 {
		dc.Samples = c.Samples
	}
	if c.Independent {
		dc.Independent = true
	}
	if c.Output != "" {
		dc.Output = c.Output
	}

	cfg := latticegas.Config{
		Size:         dc.Size,
		Density:      dc.Density,
		Sweeps:       dc.Sweeps,
		Measurements: dc.Measurements,
		Samples:      dc.Samples,
		Independent:  dc.Independent,
		Workers:      e.cfg.Parallel.Workers,
		Logger:       e.logger,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.logger.Info("Starting lattice gas simulation",
		"size", cfg.Size,
		"density", cfg.Density,
		"sweeps", cfg.Sweeps,
		"samples", cfg.Samples)

	res, err := latticegas.Simulate(e.ctx, cfg, e.cfg.NewMaster())
	if err != nil {
		return err
	}

	f, err := datafile.Create(filepath.Dir(dc.Output), filepath.Base(dc.Output))
	if err != nil {
		return err
	}
	if err := datafile.WriteDiffusion(f, cfg, res.Rows); err != nil {
		f.Discard()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	var particles int
	for _, n := range res.Particles {
		particles += n
	}
	last := res.Rows[len(res.Rows)-1]

	s := newSummary("Lattice gas diffusion")
	s.add("lattice", "%dx%d", cfg.Size, cfg.Size)
	s.add("mean density", "%.4f", float64(particles)/float64(len(res.Particles)*cfg.Size*cfg.Size))
	s.add("samples", "%d", cfg.Samples)
	s.add("sweeps", "%d", cfg.Sweeps)
	s.add("D(t) at final sweep", "%.6f ± %.6f", last.D, last.ErrD)
	s.file(f.Name())
	return s.render(e.out, res.Elapsed)
}
