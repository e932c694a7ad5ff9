package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Accumulator keeps running sums for mean and variance estimates without
// storing the observations.
type Accumulator struct {
	N    int
	Sum  float64
	Sum2 float64 // Sum of squares for variance calculation
}

// Add incorporates a new observation
func (a *Accumulator) Add(v float64) {
	a.N++
	a.Sum += v
	a.Sum2 += v * v
}

// Mean returns the arithmetic mean of all observations
func (a *Accumulator) Mean() float64 {
	if a.N == 0 {
		return 0
	}
	return a.Sum / float64(a.N)
}

// Variance returns the sample variance (n-1 denominator)
func (a *Accumulator) Variance() float64 {
	if a.N < 2 {
		return 0
	}
	mean := a.Mean()
	return (a.Sum2 - float64(a.N)*mean*mean) / float64(a.N-1)
}

// PopulationVariance returns <x^2> - <x>^2, clamped at zero.
func (a *Accumulator) PopulationVariance() float64 {
	if a.N == 0 {
		return 0
	}
	mean := a.Mean()
	v := a.Sum2/float64(a.N) - mean*mean
	if v <= 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean
func (a *Accumulator) StdError() float64 {
	if a.N == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (a *Accumulator) ConfidenceInterval95() (float64, float64) {
	mean := a.Mean()
	margin := 1.96 * a.StdError() // 95% confidence
	return mean - margin, mean + margin
}

// Sample is an Accumulator that also retains every observation so that order
// statistics can be reported.
type Sample struct {
	Accumulator
	Values []float64
}

// Add incorporates a new observation
func (s *Sample) Add(v float64) {
	s.Accumulator.Add(v)
	s.Values = append(s.Values, v)
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median value of all observations
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the empirical quantile at p (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, s.sorted(), nil)
}

// Validate checks that the running sums agree with the retained values
func (s *Sample) Validate() error {
	if s.N <= 0 {
		return fmt.Errorf("invalid observation count: %d", s.N)
	}

	if len(s.Values) != s.N {
		return fmt.Errorf("values array length (%d) does not match count (%d)",
			len(s.Values), s.N)
	}

	mean, variance := stat.MeanVariance(s.Values, nil)
	if math.Abs(mean-s.Mean()) > 1e-6*math.Max(1, math.Abs(mean)) {
		return fmt.Errorf("running mean %.6f disagrees with recomputed mean %.6f", s.Mean(), mean)
	}
	if s.N > 1 && math.Abs(variance-s.Variance()) > 1e-6*math.Max(1, variance) {
		return fmt.Errorf("running variance %.6f disagrees with recomputed variance %.6f", s.Variance(), variance)
	}

	return nil
}

// Series holds one Accumulator per time index, e.g. one per measurement.
type Series []Accumulator

// NewSeries returns a series of n empty accumulators
func NewSeries(n int) Series {
	return make(Series, n)
}

// Add records v at index i
func (s Series) Add(i int, v float64) {
	s[i].Add(v)
}

// Means returns the mean at every index
func (s Series) Means() []float64 {
	means := make([]float64, len(s))
	for i := range s {
		means[i] = s[i].Mean()
	}
	return means
}
