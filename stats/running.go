// Package stats provides an incremental accumulator of summary statistics.
package stats

import "math"

// RunningStatistics accumulates count, sum, sum of squares, minimum and
// maximum over a stream of observations. Mean, variance and standard
// deviation are derived on demand.
//
// The zero value is an empty accumulator ready for use.
// A RunningStatistics is not safe for concurrent use.
type RunningStatistics struct {
	count int
	sum   float64
	sumSq float64
	min   float64
	max   float64
}

// New returns an empty accumulator.
func New() *RunningStatistics {
	return &RunningStatistics{}
}

// Reset discards all observations.
func (s *RunningStatistics) Reset() {
	*s = RunningStatistics{}
}

// Add records an observation.
func (s *RunningStatistics) Add(v float64) {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.count++
	s.sum += v
	s.sumSq += v * v
}

// Remove undoes a previous Add of v. Min and Max are not restored.
//
// The accumulator does not track membership: removing a value that was never
// added corrupts the state. Remove on an empty accumulator is a no-op.
func (s *RunningStatistics) Remove(v float64) {
	if s.count < 1 {
		return
	}
	s.count--
	s.sum -= v
	s.sumSq -= v * v
}

// Count returns the number of observations.
func (s *RunningStatistics) Count() int { return s.count }

// Sum returns the sum of observations.
func (s *RunningStatistics) Sum() float64 { return s.sum }

// SumOfSquares returns the sum of squared observations.
func (s *RunningStatistics) SumOfSquares() float64 { return s.sumSq }

// Min returns the smallest observation, or +Inf if there is none.
func (s *RunningStatistics) Min() float64 {
	if s.count == 0 {
		return math.Inf(1)
	}
	return s.min
}

// Max returns the largest observation, or -Inf if there is none.
func (s *RunningStatistics) Max() float64 {
	if s.count == 0 {
		return math.Inf(-1)
	}
	return s.max
}

// Mean returns the arithmetic mean, or 0 if there are no observations.
func (s *RunningStatistics) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Variance returns the unbiased sample variance (n-1 denominator).
// It is 0 for fewer than two observations.
//
// The single-pass form (Σx² - (Σx)²/n)/(n-1) loses precision for inputs of
// large magnitude; negative results from cancellation are reported as 0.
func (s *RunningStatistics) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	n := float64(s.count)
	v := (s.sumSq - s.sum*s.sum/n) / (n - 1)
	if v < 0 {
		return 0
	}
	return v
}

// StandardDeviation returns the square root of Variance.
func (s *RunningStatistics) StandardDeviation() float64 {
	return math.Sqrt(s.Variance())
}
