// Package datafile writes simulation results as whitespace-separated numeric
// tables, one record per line, with optional '#' comment headers.
package datafile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lox/latticemc/internal/latticegas"
	"github.com/lox/latticemc/internal/walk"
)

// Default file names inside an output directory.
const (
	Walk1DTrajectories = "ran_gen.dat"
	Walk1DMeanSquare   = "x2_mean.dat"
	Walk2DSamples      = "2d_ran_gen.dat"
	Walk2DTrace        = "2d_ran_walk_trace.dat"
	Diffusion          = "diffusion.dat"
)

// File is a buffered output file. Data goes to a temporary file in the same
// directory which Close renames into place, so readers never observe a
// partially written table.
type File struct {
	*bufio.Writer
	tmp  *os.File
	path string
	done bool
}

// Create creates (truncating) name inside dir, making dir if needed.
func Create(dir, name string) (*File, error) {
	path := name
	if dir != "" {
		path = filepath.Join(dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Same directory as the target: cross-filesystem renames are not atomic.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &File{Writer: bufio.NewWriter(tmp), tmp: tmp, path: path}, nil
}

// Name returns the final path of the file.
func (f *File) Name() string { return f.path }

// Close flushes the data and moves the file to its final path. Calling Close
// again, or Discard after Close, is a no-op.
func (f *File) Close() error {
	if f.done {
		return nil
	}
	f.done = true

	if err := f.commit(); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return err
	}
	return nil
}

func (f *File) commit() error {
	if err := f.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", f.path, err)
	}
	if err := f.tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", f.path, err)
	}
	if err := f.tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	if err := os.Chmod(f.tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", f.path, err)
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename %s: %w", f.path, err)
	}
	return nil
}

// Discard drops everything written so far, leaving any existing file at the
// final path untouched.
func (f *File) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

// WriteTrajectory1D writes one run as "step position position^2 time" rows.
func WriteTrajectory1D(w io.Writer, traj walk.Trajectory1D) error {
	for i, x := range traj {
		if _, err := fmt.Fprintf(w, "%d %d %d %d\n", i, x, x*x, i); err != nil {
			return err
		}
	}
	return nil
}

// WriteMeanSquare writes "time <x^2>" rows.
func WriteMeanSquare(w io.Writer, meanSquare []float64) error {
	for t, v := range meanSquare {
		if _, err := fmt.Fprintf(w, "%d %f\n", t, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteSample2D writes a "run time step x y" row.
func WriteSample2D(w io.Writer, s walk.Sample2D) error {
	_, err := fmt.Fprintf(w, "%d %d %d %d %d\n", s.Run, s.Time, s.Step, s.Pos.X, s.Pos.Y)
	return err
}

// WriteTrace2D writes "time x y" rows.
func WriteTrace2D(w io.Writer, traj walk.Trajectory2D) error {
	for i, p := range traj {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", i+1, p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

// WriteDiffusion writes the diffusion table with its two header lines.
func WriteDiffusion(w io.Writer, cfg latticegas.Config, rows []latticegas.Row) error {
	if _, err := fmt.Fprintf(w, "# L = %d  rho_input = %.3f  num_sweeps = %d    num_samples = %d\n",
		cfg.Size, cfg.Density, cfg.Sweeps, cfg.Samples); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# sweep   deltaR2_mean      D_t_mean        err_deltaR2\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%d %.12f %.12f %.12f %.12f\n", r.Sweep, r.MeanR2, r.D, r.ErrR2, r.ErrD); err != nil {
			return err
		}
	}
	return nil
}
