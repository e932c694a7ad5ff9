package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Walk1D    Walk1DCmd        `cmd:"walk1d" help:"Simulate an ensemble of 1D random walks and compute <x^2(t)>"`
	Walk2D    Walk2DCmd        `cmd:"walk2d" help:"Simulate an ensemble of 2D lattice random walks sampled at a target time"`
	Diffusion DiffusionCmd     `cmd:"" help:"Estimate the lattice gas diffusion coefficient"`
	Seeds     SeedsCmd         `cmd:"" help:"Print seeds drawn from the master generator"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("latticemc"),
		kong.Description("Monte Carlo lattice simulations driven by PCG32 seed hierarchies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
