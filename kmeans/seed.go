package kmeans

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/vector"
)

// validate checks the dataset and cluster count shared by seeding and fitting.
func validate(points []vector.Point, k int) error {
	if _, err := vector.Dim(points); err != nil {
		return err
	}
	// Members indexes points with uint32 bitmaps.
	if uint64(len(points)) > math.MaxUint32 {
		return &ErrInvalidK{K: k, N: len(points)}
	}
	if k < 1 || k > len(points) {
		return &ErrInvalidK{K: k, N: len(points)}
	}
	return nil
}

// SeedRandom picks k distinct dataset points uniformly at random.
// The returned centroids are copies.
func SeedRandom(points []vector.Point, k int, rng *rand.Rand) ([]vector.Point, error) {
	if err := validate(points, k); err != nil {
		return nil, err
	}

	perm := rng.Perm(len(points))
	centroids := make([]vector.Point, k)
	for i := range k {
		centroids[i] = points[perm[i]].Clone()
	}
	return centroids, nil
}

// SeedPlusPlus chooses k initial centroids with k-means++.
//
// The first centroid is uniform over the dataset. Each following one is drawn
// with probability proportional to the distance from a point to its nearest
// chosen centroid. With trials > 1 that many candidates are drawn per step
// and the one minimizing the summed nearest-centroid distance is kept.
// The returned centroids are copies.
func SeedPlusPlus(points []vector.Point, k int, dist distance.Distance, rng *rand.Rand, trials int) ([]vector.Point, error) {
	if err := validate(points, k); err != nil {
		return nil, err
	}
	if trials < 1 {
		trials = 1
	}

	n := len(points)
	chosen := make([]bool, n)
	centroids := make([]vector.Point, 0, k)

	first := rng.Intn(n)
	chosen[first] = true
	centroids = append(centroids, points[first].Clone())

	// weights[i] is the distance from point i to its nearest centroid.
	weights := make([]float64, n)
	var total float64
	for i, p := range points {
		weights[i] = dist.Distance(p, centroids[0])
		total += weights[i]
	}

	for len(centroids) < k {
		next := -1
		if total > 0 {
			if trials == 1 {
				next = weightedSample(weights, total, rng)
			} else {
				best := math.Inf(1)
				for range trials {
					cand := weightedSample(weights, total, rng)
					if potential := potentialWith(points, weights, points[cand], dist); potential < best {
						best, next = potential, cand
					}
				}
			}
		}
		if next < 0 || chosen[next] {
			// Every remaining point coincides with a chosen centroid.
			next = uniformUnchosen(chosen, rng)
		}

		chosen[next] = true
		c := points[next].Clone()
		centroids = append(centroids, c)

		total = 0
		for i, p := range points {
			if d := dist.Distance(p, c); d < weights[i] {
				weights[i] = d
			}
			total += weights[i]
		}
	}

	return centroids, nil
}

// weightedSample returns the first index whose cumulative weight exceeds a
// uniform cutoff in [0, total).
func weightedSample(weights []float64, total float64, rng *rand.Rand) int {
	cutoff := rng.Float64() * total
	var cumulative float64
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if cumulative > cutoff {
			return i
		}
	}
	// Rounding left the cutoff beyond the accumulated sum.
	return last
}

// potentialWith is the summed nearest-centroid distance if cand were added.
func potentialWith(points []vector.Point, weights []float64, cand vector.Point, dist distance.Distance) float64 {
	var s float64
	for i, p := range points {
		s += min(weights[i], dist.Distance(p, cand))
	}
	return s
}

func uniformUnchosen(chosen []bool, rng *rand.Rand) int {
	free := 0
	for _, c := range chosen {
		if !c {
			free++
		}
	}
	pick := rng.Intn(free)
	for i, c := range chosen {
		if c {
			continue
		}
		if pick == 0 {
			return i
		}
		pick--
	}
	return -1
}

// GreedyTrials is the candidate count greedy k-means++ uses for k clusters
// when none is configured: 2+ln(k).
func GreedyTrials(k int) int {
	return 2 + int(math.Log(float64(k)))
}

// Seed chooses k initial centroids with the given strategy. trials only
// applies to k-means++; values below 2 select the classic algorithm.
func Seed(points []vector.Point, k int, dist distance.Distance, rng *rand.Rand, s Seeding, trials int) ([]vector.Point, error) {
	switch s {
	case SeedingRandom:
		return SeedRandom(points, k, rng)
	case SeedingKMeansPlusPlus:
		return SeedPlusPlus(points, k, dist, rng, trials)
	default:
		return nil, fmt.Errorf("%w: unknown seeding %s", ErrInvalidInput, s)
	}
}

func seed(points []vector.Point, k int, dist distance.Distance, rng *rand.Rand, o *options) ([]vector.Point, error) {
	trials := o.localTrials
	if trials < 1 {
		trials = GreedyTrials(k)
	}
	return Seed(points, k, dist, rng, o.seeding, trials)
}
