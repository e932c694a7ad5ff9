// Package walk simulates unit-step random walks on the integer line and on
// the square lattice.
package walk

// Uniform is the only randomness a walk needs: values in [0, 1).
type Uniform interface {
	Float64() float64
}

// Point is a site on the square lattice.
type Point struct {
	X, Y int64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Lattice directions in the order the unit interval is quartered.
var (
	East  = Point{X: 1}
	West  = Point{X: -1}
	North = Point{Y: 1}
	South = Point{Y: -1}
)

// Step1D maps a uniform draw to a step on the line: +1 when u > 0.5.
func Step1D(u float64) int64 {
	if u > 0.5 {
		return 1
	}
	return -1
}

// Step2D maps a uniform draw to one of the four lattice directions, each
// owning a quarter of [0, 1).
func Step2D(u float64) Point {
	switch {
	case u < 0.25:
		return East
	case u < 0.5:
		return West
	case u < 0.75:
		return North
	default:
		return South
	}
}
