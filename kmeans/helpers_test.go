package kmeans

import (
	"sync"
	"testing"
	"time"

	"github.com/hewlib/hew/distance"
	"github.com/hewlib/hew/testutil"
	"github.com/hewlib/hew/vector"
)

var sqEuclid = distance.Func(distance.SquaredEuclidean)

// fourBlobs returns perCluster points around each of testutil.FourBlobCenters.
func fourBlobs(t *testing.T, seed int64, perCluster int) []vector.Point {
	t.Helper()
	return testutil.NewRNG(seed).GaussianBlobs(testutil.FourBlobCenters, perCluster, 0.1)
}

type recordingObserver struct {
	mu         sync.Mutex
	dispersion []float64
	fits       int
	gaps       map[int]float64
}

func (r *recordingObserver) OnIteration(_, _ int, dispersion float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispersion = append(r.dispersion, dispersion)
}

func (r *recordingObserver) OnFit(int, int, bool, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fits++
}

func (r *recordingObserver) OnGap(k int, gap, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gaps == nil {
		r.gaps = make(map[int]float64)
	}
	r.gaps[k] = gap
}
