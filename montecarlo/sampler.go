// Package montecarlo generates uniformly distributed points inside an
// axis-aligned bounding box. It provides the null distribution for the gap
// statistic in package kmeans.
package montecarlo

import (
	"fmt"
	"iter"
	"math"
	"math/rand"
	"slices"

	"github.com/hewlib/hew/vector"
)

// Sampler draws points uniformly from [mins[i], maxs[i]] in every dimension.
// A Sampler is immutable and safe for concurrent use; randomness is supplied
// per call.
type Sampler struct {
	mins vector.Point
	maxs vector.Point
}

// New creates a sampler for the given per-dimension bounds.
func New(mins, maxs []float64) (*Sampler, error) {
	if len(mins) == 0 {
		return nil, fmt.Errorf("%w: sampler needs at least one dimension", vector.ErrInvalidInput)
	}
	if len(mins) != len(maxs) {
		return nil, &vector.ErrDimensionMismatch{Index: 1, Expected: len(mins), Actual: len(maxs)}
	}
	for i := range mins {
		if !finite(mins[i]) || !finite(maxs[i]) {
			return nil, fmt.Errorf("%w: dimension %d has non-finite bounds [%g, %g]", vector.ErrInvalidInput, i, mins[i], maxs[i])
		}
		if mins[i] > maxs[i] {
			return nil, fmt.Errorf("%w: dimension %d has min %g > max %g", vector.ErrInvalidInput, i, mins[i], maxs[i])
		}
	}
	return &Sampler{
		mins: slices.Clone(mins),
		maxs: slices.Clone(maxs),
	}, nil
}

// ForPoints creates a sampler over the bounding box of points.
func ForPoints(points []vector.Point) (*Sampler, error) {
	mins, maxs, err := vector.Bounds(points)
	if err != nil {
		return nil, err
	}
	return New(mins, maxs)
}

// Dim returns the dimensionality of generated points.
func (s *Sampler) Dim() int {
	return len(s.mins)
}

// Points returns a lazy sequence of n independent uniform points.
//
// The sequence is not restartable: ranging over it again resumes after the
// last point produced, and it ends once n points have been yielded in total.
// Each call to Points starts a fresh sequence.
func (s *Sampler) Points(rng *rand.Rand, n int) iter.Seq[vector.Point] {
	remaining := n
	return func(yield func(vector.Point) bool) {
		for remaining > 0 {
			remaining--
			if !yield(s.point(rng)) {
				return
			}
		}
	}
}

// Sample materializes n uniform points.
func (s *Sampler) Sample(rng *rand.Rand, n int) []vector.Point {
	out := make([]vector.Point, 0, max(n, 0))
	for p := range s.Points(rng, n) {
		out = append(out, p)
	}
	return out
}

func (s *Sampler) point(rng *rand.Rand) vector.Point {
	p := make(vector.Point, len(s.mins))
	for i := range p {
		p[i] = s.mins[i] + rng.Float64()*(s.maxs[i]-s.mins[i])
	}
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
