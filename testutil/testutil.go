package testutil

import (
	"math/rand"
	"sync"

	"github.com/hewlib/hew/vector"
)

// FourBlobCenters are the means of four well-separated blobs, one per
// quadrant of the plane.
var FourBlobCenters = []vector.Point{
	{-0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
	{0.5, -0.5},
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Rand returns an independent generator seeded from r, suitable for handing
// to code that is not safe for concurrent use.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewSource(r.rand.Int63()))
}

// UniformPoints generates num points with coordinates uniform in [lo, hi).
func (r *RNG) UniformPoints(num, dim int, lo, hi float64) []vector.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]vector.Point, num)
	for i := range points {
		p := make(vector.Point, dim)
		for j := range p {
			p[j] = lo + r.rand.Float64()*(hi-lo)
		}
		points[i] = p
	}
	return points
}

// GaussianBlobs generates perCluster points around each center with
// isotropic Gaussian noise of standard deviation sigma. Points are grouped by
// center in the order of centers.
func (r *RNG) GaussianBlobs(centers []vector.Point, perCluster int, sigma float64) []vector.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]vector.Point, 0, len(centers)*perCluster)
	for _, c := range centers {
		for range perCluster {
			p := make(vector.Point, len(c))
			for j := range p {
				p[j] = c[j] + r.rand.NormFloat64()*sigma
			}
			points = append(points, p)
		}
	}
	return points
}

// Quadrant returns the index into FourBlobCenters whose signs match p.
func Quadrant(p vector.Point) int {
	switch {
	case p[0] < 0 && p[1] < 0:
		return 0
	case p[0] >= 0 && p[1] >= 0:
		return 1
	case p[0] < 0:
		return 2
	default:
		return 3
	}
}
