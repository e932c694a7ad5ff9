package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/latticemc/internal/latticegas"
	"github.com/lox/latticemc/internal/seedgen"
)

// Config represents the complete simulation configuration
type Config struct {
	LogLevel  string           `hcl:"log_level,optional"`
	Master    *MasterConfig    `hcl:"master,block"`
	Parallel  *ParallelConfig  `hcl:"parallel,block"`
	Walk1D    *Walk1DConfig    `hcl:"walk1d,block"`
	Walk2D    *Walk2DConfig    `hcl:"walk2d,block"`
	Diffusion *DiffusionConfig `hcl:"diffusion,block"`
}

// MasterConfig seeds the generator that mints per-run seeds
type MasterConfig struct {
	State    uint64 `hcl:"state"`
	Sequence uint64 `hcl:"sequence"`
}

// ParallelConfig controls how many runs execute at once
type ParallelConfig struct {
	Workers int `hcl:"workers,optional"`
}

// Walk1DConfig defines a 1D random walk ensemble
type Walk1DConfig struct {
	Runs      int    `hcl:"runs,optional"`
	Steps     int    `hcl:"steps,optional"`
	OutputDir string `hcl:"output_dir,optional"`
}

// Walk2DConfig defines a 2D random walk ensemble
type Walk2DConfig struct {
	Runs      int    `hcl:"runs,optional"`
	Steps     int    `hcl:"steps,optional"`
	Target    int    `hcl:"target,optional"`
	Trace     *bool  `hcl:"trace,optional"`
	OutputDir string `hcl:"output_dir,optional"`
}

// DiffusionConfig defines a lattice gas diffusion estimate
type DiffusionConfig struct {
	Size         int     `hcl:"size,optional"`
	Density      float64 `hcl:"density,optional"`
	Sweeps       int     `hcl:"sweeps,optional"`
	Measurements int     `hcl:"measurements,optional"`
	Samples      int     `hcl:"samples,optional"`
	Independent  bool    `hcl:"independent,optional"`
	Output       string  `hcl:"output,optional"`
}

// DefaultConfig returns default simulation configuration
func DefaultConfig() *Config {
	trace := true
	return &Config{
		LogLevel: "info",
		Master: &MasterConfig{
			State:    seedgen.DefaultState,
			Sequence: seedgen.DefaultSequence,
		},
		Parallel: &ParallelConfig{Workers: 1},
		Walk1D: &Walk1DConfig{
			Runs:      100,
			Steps:     1000,
			OutputDir: "results/dat",
		},
		Walk2D: &Walk2DConfig{
			Runs:      100,
			Steps:     1000,
			Target:    1000,
			Trace:     &trace,
			OutputDir: "results/dat",
		},
		Diffusion: &DiffusionConfig{
			Size:         20,
			Density:      0.5,
			Sweeps:       1000,
			Measurements: latticegas.DefaultMeasurements,
			Samples:      10,
			Output:       "results/dat/diffusion.dat",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills missing blocks and zero-valued fields
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Master == nil {
		c.Master = def.Master
	}
	if c.Parallel == nil {
		c.Parallel = def.Parallel
	}
	if c.Parallel.Workers == 0 {
		c.Parallel.Workers = def.Parallel.Workers
	}

	if c.Walk1D == nil {
		c.Walk1D = def.Walk1D
	}
	if c.Walk1D.Runs == 0 {
		c.Walk1D.Runs = def.Walk1D.Runs
	}
	if c.Walk1D.Steps == 0 {
		c.Walk1D.Steps = def.Walk1D.Steps
	}
	if c.Walk1D.OutputDir == "" {
		c.Walk1D.OutputDir = def.Walk1D.OutputDir
	}

	if c.Walk2D == nil {
		c.Walk2D = def.Walk2D
	}
	if c.Walk2D.Runs == 0 {
		c.Walk2D.Runs = def.Walk2D.Runs
	}
	if c.Walk2D.Steps == 0 {
		c.Walk2D.Steps = def.Walk2D.Steps
	}
	if c.Walk2D.Target == 0 {
		c.Walk2D.Target = c.Walk2D.Steps // sample at the end of the walk
	}
	if c.Walk2D.Trace == nil {
		c.Walk2D.Trace = def.Walk2D.Trace
	}
	if c.Walk2D.OutputDir == "" {
		c.Walk2D.OutputDir = def.Walk2D.OutputDir
	}

	if c.Diffusion == nil {
		c.Diffusion = def.Diffusion
	}
	if c.Diffusion.Size == 0 {
		c.Diffusion.Size = def.Diffusion.Size
	}
	if c.Diffusion.Density == 0 {
		c.Diffusion.Density = def.Diffusion.Density
	}
	if c.Diffusion.Sweeps == 0 {
		c.Diffusion.Sweeps = def.Diffusion.Sweeps
	}
	if c.Diffusion.Measurements == 0 {
		c.Diffusion.Measurements = def.Diffusion.Measurements
	}
	if c.Diffusion.Samples == 0 {
		c.Diffusion.Samples = def.Diffusion.Samples
	}
	if c.Diffusion.Output == "" {
		c.Diffusion.Output = def.Diffusion.Output
	}
}

// Validate validates the settings shared by every simulation. Each simulation
// validates its own parameters before it starts.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Parallel.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Parallel.Workers)
	}
	if c.Walk1D.OutputDir == "" || c.Walk2D.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.Diffusion.Output == "" {
		return fmt.Errorf("diffusion output file must not be empty")
	}
	return nil
}

// NewMaster returns the master generator described by the configuration
func (c *Config) NewMaster() *seedgen.Master {
	return seedgen.NewMaster(c.Master.State, c.Master.Sequence)
}
