package kmeans

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/vector"
	"gonum.org/v1/gonum/floats"
)

// Assign maps every point to the index of its nearest centroid.
// Ties go to the lowest index.
func Assign(points, centroids []vector.Point, dist distance.Distance) []int {
	assignment, _ := assign(points, centroids, dist)
	return assignment
}

// assign also returns the dispersion of the assignment against centroids.
func assign(points, centroids []vector.Point, dist distance.Distance) ([]int, float64) {
	assignment := make([]int, len(points))
	var total float64
	for i, p := range points {
		best := 0
		minDist := math.Inf(1)
		for j, c := range centroids {
			if d := dist.Distance(p, c); d < minDist {
				minDist = d
				best = j
			}
		}
		assignment[i] = best
		total += minDist
	}
	return assignment, total
}

// recenter returns a new centroid set holding the mean of each cluster's
// members. A cluster without members keeps its previous centroid.
func recenter(points []vector.Point, assignment []int, prev []vector.Point) []vector.Point {
	d := len(prev[0])
	sums := make([]vector.Point, len(prev))
	counts := make([]int, len(prev))

	for i, p := range points {
		j := assignment[i]
		if sums[j] == nil {
			sums[j] = make(vector.Point, d)
		}
		floats.Add(sums[j], p)
		counts[j]++
	}

	next := make([]vector.Point, len(prev))
	for j := range prev {
		if counts[j] == 0 {
			next[j] = prev[j]
			continue
		}
		floats.Scale(1/float64(counts[j]), sums[j])
		next[j] = sums[j]
	}
	return next
}

// converged compares consecutive centroid sets. With tol > 0 every
// coordinate must have moved by at most tol. Otherwise the sets of coordinate
// tuples must be identical, ignoring order and duplicates.
func converged(prev, next []vector.Point, tol float64) bool {
	if tol > 0 {
		for j := range prev {
			if floats.Distance(prev[j], next[j], math.Inf(1)) > tol {
				return false
			}
		}
		return true
	}
	return slices.EqualFunc(uniqueSorted(prev), uniqueSorted(next), vector.Equal)
}

func uniqueSorted(points []vector.Point) []vector.Point {
	s := slices.Clone(points)
	slices.SortFunc(s, func(a, b vector.Point) int {
		return slices.Compare(a, b)
	})
	return slices.CompactFunc(s, vector.Equal)
}

// Relocate runs Lloyd's algorithm from the given initial centroids.
//
// Each iteration assigns points to their nearest centroid and moves every
// centroid to the mean of its members. The loop ends when the centroid set
// repeats (see WithTolerance) or the iteration cap is reached (see
// WithMaxIterations). The initial centroids are not modified.
func Relocate(ctx context.Context, points, initial []vector.Point, dist distance.Distance, opts ...Option) (*Clustering, error) {
	o := applyOptions(opts)

	if err := validate(points, len(initial)); err != nil {
		return nil, err
	}
	d := len(points[0])
	for j, c := range initial {
		if len(c) != d {
			return nil, fmt.Errorf("initial centroid: %w", &vector.ErrDimensionMismatch{Index: j, Expected: d, Actual: len(c)})
		}
	}

	return relocate(ctx, points, initial, dist, &o)
}

func relocate(ctx context.Context, points, initial []vector.Point, dist distance.Distance, o *options) (*Clustering, error) {
	k := len(initial)
	centroids := make([]vector.Point, k)
	for j, c := range initial {
		centroids[j] = c.Clone()
	}

	var best *Clustering
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignment, wk := assign(points, centroids, dist)
		o.metrics.OnIteration(k, iter, wk)

		next := recenter(points, assignment, centroids)
		if converged(centroids, next, o.tolerance) {
			return &Clustering{
				Centroids:  centroids,
				Assignment: assignment,
				Iterations: iter,
				Converged:  true,
				Dispersion: wk,
			}, nil
		}

		if best == nil || wk < best.Dispersion {
			best = &Clustering{
				Centroids:  centroids,
				Assignment: assignment,
				Iterations: iter,
				Dispersion: wk,
			}
		}
		if o.maxIterations > 0 && iter >= o.maxIterations {
			best.Iterations = iter
			return best, nil
		}

		centroids = next
	}
}
