package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/latticemc/internal/seedgen"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latticemc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, uint64(seedgen.DefaultState), cfg.Master.State)
	assert.Equal(t, uint64(seedgen.DefaultSequence), cfg.Master.Sequence)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

master {
  state    = 42
  sequence = 54
}

parallel {
  workers = 4
}

walk1d {
  runs       = 10
  steps      = 500
  output_dir = "out/1d"
}

walk2d {
  runs   = 20
  steps  = 300
  target = 100
  trace  = false
}

diffusion {
  size         = 32
  density      = 0.25
  sweeps       = 2000
  measurements = 50
  samples      = 4
  independent  = true
  output       = "out/d.dat"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, &MasterConfig{State: 42, Sequence: 54}, cfg.Master)
	assert.Equal(t, 4, cfg.Parallel.Workers)

	assert.Equal(t, &Walk1DConfig{Runs: 10, Steps: 500, OutputDir: "out/1d"}, cfg.Walk1D)

	assert.Equal(t, 20, cfg.Walk2D.Runs)
	assert.Equal(t, 300, cfg.Walk2D.Steps)
	assert.Equal(t, 100, cfg.Walk2D.Target)
	require.NotNil(t, cfg.Walk2D.Trace)
	assert.False(t, *cfg.Walk2D.Trace)
	assert.Equal(t, "results/dat", cfg.Walk2D.OutputDir)

	assert.Equal(t, &DiffusionConfig{
		Size: 32, Density: 0.25, Sweeps: 2000, Measurements: 50,
		Samples: 4, Independent: true, Output: "out/d.dat",
	}, cfg.Diffusion)

	assert.Equal(t, uint32(0xa15c02b7), cfg.NewMaster().Next())
}

func TestLoadConfig_PartialBlocksGetDefaults(t *testing.T) {
	path := writeConfig(t, `
walk2d {
  steps = 50
}
diffusion {
  density = 0.1
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultConfig().Master, cfg.Master)
	assert.Equal(t, 1, cfg.Parallel.Workers)
	assert.Equal(t, DefaultConfig().Walk1D, cfg.Walk1D)

	assert.Equal(t, 50, cfg.Walk2D.Steps)
	assert.Equal(t, 50, cfg.Walk2D.Target, "target defaults to the walk length")
	assert.True(t, *cfg.Walk2D.Trace)

	assert.Equal(t, 0.1, cfg.Diffusion.Density)
	assert.Equal(t, 20, cfg.Diffusion.Size)
	assert.Equal(t, 100, cfg.Diffusion.Measurements)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `walk1d {`))
		assert.ErrorContains(t, err, "failed to parse HCL file")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `bogus = 1`))
		assert.ErrorContains(t, err, "failed to decode HCL")
	})

	t.Run("master without sequence", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "master {\n  state = 1\n}\n"))
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Parallel.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Diffusion.Output = ""
	assert.Error(t, cfg.Validate())
}
