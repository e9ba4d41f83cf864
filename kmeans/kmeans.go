package kmeans

import (
	"context"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/vector"
)

// Clustering is the result of a fit. It is owned by the caller.
type Clustering struct {
	// Centroids holds one point per cluster.
	Centroids []vector.Point
	// Assignment maps each dataset index to a cluster index.
	Assignment []int
	// Iterations is the number of relocation iterations run (>= 1).
	Iterations int
	// Converged is false when the iteration cap ended the fit.
	Converged bool
	// Dispersion is Wk: the summed distance from each point to its centroid.
	Dispersion float64
}

// K returns the number of clusters.
func (c *Clustering) K() int {
	return len(c.Centroids)
}

// Sizes returns the number of points assigned to each cluster.
func (c *Clustering) Sizes() []int {
	sizes := make([]int, len(c.Centroids))
	for _, j := range c.Assignment {
		sizes[j]++
	}
	return sizes
}

// Members returns, per cluster, the bitmap of dataset indices assigned to it.
func (c *Clustering) Members() []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, len(c.Centroids))
	for j := range members {
		members[j] = roaring.New()
	}
	for i, j := range c.Assignment {
		members[j].Add(uint32(i))
	}
	return members
}

// Fit partitions points into k clusters: seeding followed by relocation.
//
// Fit fails with ErrInvalidInput when points is empty, the points do not
// share one dimensionality, or k is outside [1, len(points)].
func Fit(ctx context.Context, points []vector.Point, k int, dist distance.Distance, opts ...Option) (*Clustering, error) {
	o := applyOptions(opts)
	return fit(ctx, points, k, dist, o.rng, &o)
}

func fit(ctx context.Context, points []vector.Point, k int, dist distance.Distance, rng *rand.Rand, o *options) (*Clustering, error) {
	start := time.Now()

	if err := validate(points, k); err != nil {
		o.metrics.OnFit(k, 0, false, time.Since(start), err)
		return nil, err
	}

	var best *Clustering
	for range o.restarts {
		seeds, err := seed(points, k, dist, rng, o)
		if err != nil {
			o.metrics.OnFit(k, 0, false, time.Since(start), err)
			return nil, err
		}

		c, err := relocate(ctx, points, seeds, dist, o)
		if err != nil {
			o.metrics.OnFit(k, 0, false, time.Since(start), err)
			return nil, err
		}

		if best == nil || c.Dispersion < best.Dispersion {
			best = c
		}
	}

	o.metrics.OnFit(k, best.Iterations, best.Converged, time.Since(start), nil)
	o.logger.Debug("kmeans fit",
		"k", k,
		"points", len(points),
		"iterations", best.Iterations,
		"converged", best.Converged,
		"dispersion", best.Dispersion,
	)

	return best, nil
}

// Wk returns the compactness of c over points: the summed distance from each
// point to its assigned centroid. Lower is tighter. It is only meaningful
// relative to other clusterings of comparable data.
func Wk(points []vector.Point, c *Clustering, dist distance.Distance) float64 {
	var s float64
	for i, p := range points {
		s += dist.Distance(p, c.Centroids[c.Assignment[i]])
	}
	return s
}

// MemberWk returns the summed distance from the points indexed by members to
// centroid. Over the bitmaps of Members it splits Wk by cluster.
func MemberWk(points []vector.Point, centroid vector.Point, members *roaring.Bitmap, dist distance.Distance) float64 {
	var s float64
	members.Iterate(func(i uint32) bool {
		s += dist.Distance(points[i], centroid)
		return true
	})
	return s
}
