// Package latticegas simulates hard-core particles hopping on a periodic
// square lattice and estimates their self-diffusion coefficient from the mean
// square displacement.
package latticegas

import (
	"fmt"

	"github.com/lox/latticemc/internal/walk"
)

// Empty marks an unoccupied site.
const Empty = -1

// Lattice is an L x L periodic lattice with at most one particle per site.
type Lattice struct {
	size int
	site []int // particle index per site, x*size+y

	pos       []walk.Point // wrapped coordinates
	origin    []walk.Point // coordinates at population time
	unwrapped []walk.Point // coordinates ignoring the periodic boundary
}

// New returns an empty lattice of the given side length.
func New(size int) *Lattice {
	l := &Lattice{
		size: size,
		site: make([]int, size*size),
	}
	for i := range l.site {
		l.site[i] = Empty
	}
	return l
}

// Size returns the side length.
func (l *Lattice) Size() int { return l.size }

// Particles returns the number of particles on the lattice.
func (l *Lattice) Particles() int { return len(l.pos) }

// At returns the particle index at (x, y), or Empty.
func (l *Lattice) At(x, y int) int {
	return l.site[x*l.size+y]
}

// Position returns the wrapped and unwrapped coordinates of particle p.
func (l *Lattice) Position(p int) (wrapped, unwrapped walk.Point) {
	return l.pos[p], l.unwrapped[p]
}

// Populate clears the lattice and then occupies each site with probability
// density, scanning x-major. It returns the number of particles placed.
func (l *Lattice) Populate(rng walk.Uniform, density float64) int {
	for i := range l.site {
		l.site[i] = Empty
	}
	l.pos = l.pos[:0]
	l.origin = l.origin[:0]
	l.unwrapped = l.unwrapped[:0]

	for x := 0; x < l.size; x++ {
		for y := 0; y < l.size; y++ {
			if rng.Float64() < density {
				p := walk.Point{X: int64(x), Y: int64(y)}
				l.site[x*l.size+y] = len(l.pos)
				l.pos = append(l.pos, p)
				l.origin = append(l.origin, p)
				l.unwrapped = append(l.unwrapped, p)
			}
		}
	}
	return len(l.pos)
}

// Sweep performs one unit of time: as many hop attempts as there are
// particles. Each attempt picks a particle and a direction uniformly and
// moves it if the neighbouring site is empty.
func (l *Lattice) Sweep(rng walk.Uniform) {
	n := len(l.pos)
	for attempt := 0; attempt < n; attempt++ {
		p := int(rng.Float64() * float64(n))
		dir := walk.Step2D(rng.Float64())

		from := l.pos[p]
		to := walk.Point{X: l.wrap(from.X + dir.X), Y: l.wrap(from.Y + dir.Y)}
		if l.site[l.index(to)] != Empty {
			continue
		}

		l.site[l.index(to)] = p
		l.site[l.index(from)] = Empty
		l.pos[p] = to
		l.unwrapped[p] = l.unwrapped[p].Add(dir)
	}
}

// MeanSquareDisplacement returns <|r(t) - r(0)|^2> over all particles using
// unwrapped coordinates. It is zero for an empty lattice.
func (l *Lattice) MeanSquareDisplacement() float64 {
	if len(l.pos) == 0 {
		return 0
	}
	var sum float64
	for p := range l.unwrapped {
		dx := float64(l.unwrapped[p].X - l.origin[p].X)
		dy := float64(l.unwrapped[p].Y - l.origin[p].Y)
		sum += dx*dx + dy*dy
	}
	return sum / float64(len(l.pos))
}

// Validate checks that every particle occupies exactly one site and that the
// site table agrees with the particle positions.
func (l *Lattice) Validate() error {
	n := len(l.pos)
	if n > len(l.site) {
		return fmt.Errorf("%d particles on %d sites", n, len(l.site))
	}

	seen := make([]int, n)
	occupied := 0
	for i, p := range l.site {
		if p == Empty {
			continue
		}
		if p < 0 || p >= n {
			return fmt.Errorf("invalid particle index %d at site (%d,%d)", p, i/l.size, i%l.size)
		}
		if l.index(l.pos[p]) != i {
			return fmt.Errorf("position mismatch for particle %d at site (%d,%d)", p, i/l.size, i%l.size)
		}
		seen[p]++
		occupied++
	}
	if occupied != n {
		return fmt.Errorf("occupied sites %d != particles %d", occupied, n)
	}
	for p, c := range seen {
		if c != 1 {
			return fmt.Errorf("particle %d occupies %d sites", p, c)
		}
		u := l.unwrapped[p]
		if (walk.Point{X: l.wrap(u.X), Y: l.wrap(u.Y)}) != l.pos[p] {
			return fmt.Errorf("unwrapped position of particle %d does not fold onto its site", p)
		}
	}
	return nil
}

func (l *Lattice) wrap(c int64) int64 {
	s := int64(l.size)
	return ((c % s) + s) % s
}

func (l *Lattice) index(p walk.Point) int {
	return int(p.X)*l.size + int(p.Y)
}
