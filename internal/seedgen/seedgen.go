// Package seedgen mints per-run seeds from a long-lived master PCG32 stream.
//
// Every simulation run gets its own worker generator, seeded from two
// consecutive master outputs. The master is owned by a single goroutine.
package seedgen

import "github.com/lox/latticemc/internal/pcg"

// Default master seed pair.
const (
	DefaultState    = 12345
	DefaultSequence = 67890
)

// RunSeeds is the seed pair for one run, in the order drawn from the master.
type RunSeeds struct {
	A uint32
	B uint32
}

// Master hands out run seeds. It is not safe for concurrent use.
type Master struct {
	rng pcg.PCG32
}

// NewMaster creates a master seeded with the given state and sequence.
func NewMaster(state, sequence uint64) *Master {
	return &Master{rng: pcg.New(state, sequence)}
}

// Default returns a master seeded with DefaultState and DefaultSequence.
func Default() *Master {
	return NewMaster(DefaultState, DefaultSequence)
}

// Next returns a single seed.
func (m *Master) Next() uint32 {
	return m.rng.Uint32()
}

// RunSeeds draws the seed pair for the next run.
func (m *Master) RunSeeds() RunSeeds {
	a := m.Next()
	b := m.Next()
	return RunSeeds{A: a, B: b}
}

// NextWorker draws a seed pair and returns it together with the worker it
// seeds.
func (m *Master) NextWorker() (RunSeeds, *pcg.PCG32) {
	seeds := m.RunSeeds()
	return seeds, NewWorker(seeds)
}

// Seeds returns the next n seeds.
func (m *Master) Seeds(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = m.Next()
	}
	return out
}

// NewWorker returns a fresh generator seeded with initstate=A and initseq=B.
func NewWorker(s RunSeeds) *pcg.PCG32 {
	rng := pcg.New(uint64(s.A), uint64(s.B))
	return &rng
}
