package main

import "fmt"

// SeedsCmd prints the first seeds drawn from the master generator, which is
// the sequence every simulation subcommand consumes for its runs.
type SeedsCmd struct {
	Count int `arg:"" optional:"" default:"10" help:"Number of seeds to print"`
}

func (c *SeedsCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	defer e.cancel()

	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}

	for i, seed := range e.cfg.NewMaster().Seeds(c.Count) {
		if _, err := fmt.Fprintf(e.out, "Seed %d: %d\n", i, seed); err != nil {
			return err
		}
	}
	return nil
}
