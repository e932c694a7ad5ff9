// Package pcg implements the PCG32 generator (XSH-RR output over a 64-bit
// LCG) from pcg-random.org.
//
// A PCG32 value is not safe for concurrent use. Give each goroutine its own
// generator.
package pcg

import "math/bits"

const (
	multiplier = 6364136223846793005

	// 2^32, so that Float64 never reaches 1.
	float64Scale = 1 << 32
)

// PCG32 is a permuted congruential generator with 64 bits of state and a
// 64-bit stream selector. The zero value walks stream 0 from state 0; use New
// or Seed to get a properly warmed-up generator.
type PCG32 struct {
	state uint64
	inc   uint64
}

// New returns a generator seeded with the given initial state and sequence.
func New(initstate, initseq uint64) PCG32 {
	var p PCG32
	p.Seed(initstate, initseq)
	return p
}

// Seed resets the generator. initseq selects one of 2^63 streams; the
// increment derived from it is always odd.
func (p *PCG32) Seed(initstate, initseq uint64) {
	p.state = 0
	p.inc = initseq<<1 | 1
	p.step()
	p.state += initstate
	p.step()
}

// Uint32 returns the next 32-bit value of the stream.
func (p *PCG32) Uint32() uint32 {
	old := p.step()

	// output permutation works on the pre-transition state
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Float64 returns a uniform value in [0, 1) with 32 bits of resolution.
func (p *PCG32) Float64() float64 {
	return float64(p.Uint32()) / float64Scale
}

// Uint64 returns two consecutive outputs, the first in the high word. It lets
// a *PCG32 act as a math/rand/v2 Source.
func (p *PCG32) Uint64() uint64 {
	hi := uint64(p.Uint32())
	lo := uint64(p.Uint32())
	return hi<<32 | lo
}

// Advance jumps the generator delta steps ahead in O(log delta).
func (p *PCG32) Advance(delta uint64) {
	accMult, accPlus := uint64(1), uint64(0)
	curMult, curPlus := uint64(multiplier), p.inc|1
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		delta >>= 1
	}
	p.state = accMult*p.state + accPlus
}

// State returns the raw LCG state.
func (p *PCG32) State() uint64 { return p.state }

// Increment returns the stream increment.
func (p *PCG32) Increment() uint64 { return p.inc }

// step advances the LCG and returns the previous state.
func (p *PCG32) step() uint64 {
	old := p.state
	p.state = old*multiplier + (p.inc | 1)
	return old
}
