package statistics

import (
	"math"
	"testing"
)

func TestAccumulator_Empty(t *testing.T) {
	acc := &Accumulator{}

	if acc.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty accumulator, got %f", acc.Mean())
	}
	if acc.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty accumulator, got %f", acc.Variance())
	}
	if acc.PopulationVariance() != 0 {
		t.Errorf("Expected population variance of 0 for empty accumulator, got %f", acc.PopulationVariance())
	}
	if acc.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty accumulator, got %f", acc.StdDev())
	}
	if acc.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty accumulator, got %f", acc.StdError())
	}
}

func TestSample_Empty(t *testing.T) {
	s := &Sample{}

	if s.Median() != 0 {
		t.Errorf("Expected median of 0 for empty sample, got %f", s.Median())
	}
	if s.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty sample, got %f", s.Percentile(0.5))
	}
	if err := s.Validate(); err == nil {
		t.Error("Expected empty sample to fail validation")
	}
}

func TestAccumulator_SingleValue(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(2.5)

	if acc.N != 1 {
		t.Errorf("Expected 1 observation, got %d", acc.N)
	}
	if acc.Mean() != 2.5 {
		t.Errorf("Expected mean of 2.5, got %f", acc.Mean())
	}
	if acc.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", acc.Variance())
	}
	if acc.PopulationVariance() != 0 {
		t.Errorf("Expected population variance of 0 for single value, got %f", acc.PopulationVariance())
	}
}

func TestAccumulator_Variance(t *testing.T) {
	acc := &Accumulator{}

	// [1, 3, 5] -> sample variance 4, population variance 8/3
	for _, v := range []float64{1, 3, 5} {
		acc.Add(v)
	}

	if math.Abs(acc.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", acc.Variance())
	}
	if math.Abs(acc.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", acc.StdDev())
	}
	if math.Abs(acc.PopulationVariance()-8.0/3.0) > 1e-9 {
		t.Errorf("Expected population variance of %f, got %f", 8.0/3.0, acc.PopulationVariance())
	}
	if math.Abs(acc.StdError()-2.0/math.Sqrt(3)) > 1e-9 {
		t.Errorf("Expected stderr of %f, got %f", 2.0/math.Sqrt(3), acc.StdError())
	}
}

func TestAccumulator_ConfidenceInterval(t *testing.T) {
	acc := &Accumulator{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		acc.Add(v)
	}

	low, high := acc.ConfidenceInterval95()
	mean := acc.Mean()

	// CI should be symmetric around the mean
	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestSample_MedianAndPercentiles(t *testing.T) {
	s := &Sample{}
	for _, v := range []float64{5, 1, 4, 2, 3} {
		s.Add(v)
	}

	if s.Median() != 3 {
		t.Errorf("Expected median of 3, got %f", s.Median())
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{-0.5, 1.0},
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
		{1.5, 5.0},
	}

	for _, test := range tests {
		result := s.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}

	// retained values keep insertion order
	if s.Values[0] != 5 {
		t.Errorf("Expected first value 5, got %f", s.Values[0])
	}

	s.Add(6)
	if s.Median() != 3.5 {
		t.Errorf("Expected even-length median of 3.5, got %f", s.Median())
	}
}

func TestSample_Validate(t *testing.T) {
	s := &Sample{}
	for _, v := range []float64{1.0, -1.0, 0.5} {
		s.Add(v)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid sample to pass validation, got error: %v", err)
	}

	s.Values = s.Values[:2]
	if err := s.Validate(); err == nil {
		t.Error("Expected length mismatch to fail validation")
	}

	bad := &Sample{Accumulator: Accumulator{N: 2, Sum: 10, Sum2: 50}, Values: []float64{1, 2}}
	if err := bad.Validate(); err == nil {
		t.Error("Expected inconsistent sums to fail validation")
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries(3)
	s.Add(0, 1)
	s.Add(0, 3)
	s.Add(2, 4)

	means := s.Means()
	expected := []float64{2, 0, 4}
	for i := range expected {
		if means[i] != expected[i] {
			t.Errorf("index %d: expected mean %f, got %f", i, expected[i], means[i])
		}
	}
	if s[0].N != 2 || s[1].N != 0 || s[2].N != 1 {
		t.Errorf("unexpected counts: %d %d %d", s[0].N, s[1].N, s[2].N)
	}
}
