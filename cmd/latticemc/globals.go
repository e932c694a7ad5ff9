package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/latticemc/internal/config"
)

// Globals are flags shared by every subcommand. Flags override the HCL
// configuration file when set.
type Globals struct {
	Config         string  `short:"c" default:"latticemc.hcl" help:"Path to HCL configuration file"`
	LogLevel       string  `short:"l" help:"Log level (debug|info|warn|error), overrides config"`
	LogJSON        bool    `help:"Output JSON logs instead of console format"`
	MasterState    *uint64 `help:"Master generator state seed, overrides config"`
	MasterSequence *uint64 `help:"Master generator sequence seed, overrides config"`
	Workers        int     `short:"w" help:"Number of runs executed in parallel, overrides config"`
	NoColor        bool    `help:"Disable colored output"`
	MetricsAddr    string  `help:"Serve monkit metrics on this address while running (e.g. 127.0.0.1:9000)"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

// env is everything a subcommand needs once global setup is done.
type env struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	logger *log.Logger
	out    io.Writer
}

func (g *Globals) output() io.Writer {
	if g.stdout != nil {
		return g.stdout
	}
	return os.Stdout
}

func (g *Globals) errOutput() io.Writer {
	if g.stderr != nil {
		return g.stderr
	}
	return os.Stderr
}

// loadConfig reads the configuration file and applies flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.MasterState != nil {
		cfg.Master.State = *g.MasterState
	}
	if g.MasterSequence != nil {
		cfg.Master.Sequence = *g.MasterSequence
	}
	if g.Workers != 0 {
		cfg.Parallel.Workers = g.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads configuration, builds the logger and installs signal handling.
// The caller must call env.cancel.
func (g *Globals) setup() (*env, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := createLogger(g.errOutput(), cfg.LogLevel, g.LogJSON)
	ctx, cancel := setupSignalHandler(logger)

	if g.MetricsAddr != "" {
		serveMetrics(ctx, g.MetricsAddr, logger)
	}

	logger.Debug("Master generator",
		"state", cfg.Master.State,
		"sequence", cfg.Master.Sequence,
		"workers", cfg.Parallel.Workers)

	return &env{ctx: ctx, cancel: cancel, cfg: cfg, logger: logger, out: g.output()}, nil
}
