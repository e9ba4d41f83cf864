package kmeans

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/hewlib/hew/testutil"
	"github.com/hewlib/hew/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	points := []vector.Point{{0}, {4}, {9}, {2}}
	centroids := []vector.Point{{-1}, {1}, {10}}

	got := Assign(points, centroids, sqEuclid)
	// {0} is equidistant from {-1} and {1}: the lower index wins.
	assert.Equal(t, []int{0, 1, 2, 1}, got)
}

func TestAssign_Deterministic(t *testing.T) {
	points := testutil.NewRNG(11).UniformPoints(500, 3, -1, 1)
	centroids := testutil.NewRNG(12).UniformPoints(7, 3, -1, 1)

	a := Assign(points, centroids, sqEuclid)
	b := Assign(points, centroids, sqEuclid)
	assert.Equal(t, a, b)
}

func TestConverged(t *testing.T) {
	a := []vector.Point{{1, 2}, {3, 4}}

	assert.True(t, converged(a, []vector.Point{{1, 2}, {3, 4}}, 0))
	assert.True(t, converged(a, []vector.Point{{3, 4}, {1, 2}}, 0), "order must not matter")
	assert.False(t, converged(a, []vector.Point{{1, 2}, {3, 4.0000001}}, 0))
	assert.True(t, converged(a, []vector.Point{{1, 2}, {3, 4.0000001}}, 1e-3))
	assert.False(t, converged(a, []vector.Point{{1, 2}, {3, 4.1}}, 1e-3))
}

func TestRecenter_EmptyClusterKeepsCentroid(t *testing.T) {
	points := []vector.Point{{0}, {1}}
	prev := []vector.Point{{0}, {100}}

	next := recenter(points, []int{0, 0}, prev)
	assert.Equal(t, []vector.Point{{0.5}, {100}}, next)
	assert.Equal(t, []vector.Point{{0}, {100}}, prev, "previous centroids must not change")
}

func TestRelocate_EmptyCluster(t *testing.T) {
	points := []vector.Point{{0}, {1}}
	c, err := Relocate(context.Background(), points, []vector.Point{{0}, {100}}, sqEuclid)
	require.NoError(t, err)

	assert.True(t, c.Converged)
	assert.Equal(t, 2, c.Iterations)
	assert.Equal(t, []vector.Point{{0.5}, {100}}, c.Centroids)
	assert.Equal(t, []int{0, 0}, c.Assignment)
	assert.InDelta(t, 0.5, c.Dispersion, 1e-12)
}

func TestRelocate_RecoversCenters(t *testing.T) {
	points := fourBlobs(t, 3, 100)
	initial := []vector.Point{
		{-0.75, -0.75},
		{0.75, 0.75},
		{-0.75, 0.75},
		{0.75, -0.75},
	}

	c, err := Relocate(context.Background(), points, initial, sqEuclid)
	require.NoError(t, err)
	require.True(t, c.Converged)
	require.Len(t, c.Centroids, 4)

	for j, want := range testutil.FourBlobCenters {
		assert.InDelta(t, want[0], c.Centroids[j][0], 0.1, "centroid %d", j)
		assert.InDelta(t, want[1], c.Centroids[j][1], 0.1, "centroid %d", j)
	}
	assert.Equal(t, []vector.Point{{-0.75, -0.75}, {0.75, 0.75}, {-0.75, 0.75}, {0.75, -0.75}}, initial)
}

func TestRelocate_DispersionNonIncreasing(t *testing.T) {
	points := testutil.NewRNG(5).UniformPoints(600, 2, -1, 1)
	initial, err := SeedRandom(points, 6, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	obs := &recordingObserver{}
	c, err := Relocate(context.Background(), points, initial, sqEuclid, WithMetricsObserver(obs))
	require.NoError(t, err)
	require.True(t, c.Converged)
	require.Len(t, obs.dispersion, c.Iterations)

	for i := 1; i < len(obs.dispersion); i++ {
		prev, cur := obs.dispersion[i-1], obs.dispersion[i]
		assert.LessOrEqual(t, cur, prev+1e-9*math.Abs(prev), "iteration %d", i+1)
	}
	assert.InDelta(t, obs.dispersion[len(obs.dispersion)-1], c.Dispersion, 1e-12)
}

func TestRelocate_IterationCap(t *testing.T) {
	points := testutil.NewRNG(6).UniformPoints(300, 2, -1, 1)
	initial := []vector.Point{{-1, -1}, {-0.9, -0.9}, {-0.8, -0.8}}

	c, err := Relocate(context.Background(), points, initial, sqEuclid, WithMaxIterations(1))
	require.NoError(t, err)
	assert.False(t, c.Converged)
	assert.Equal(t, 1, c.Iterations)
	assert.Equal(t, initial, c.Centroids)
	assert.InDelta(t, Wk(points, c, sqEuclid), c.Dispersion, 1e-9)
}

func TestRelocate_Tolerance(t *testing.T) {
	points := fourBlobs(t, 8, 50)
	initial := []vector.Point{{-0.75, -0.75}, {0.75, 0.75}, {-0.75, 0.75}, {0.75, -0.75}}

	exact, err := Relocate(context.Background(), points, initial, sqEuclid)
	require.NoError(t, err)
	loose, err := Relocate(context.Background(), points, initial, sqEuclid, WithTolerance(0.5))
	require.NoError(t, err)

	assert.True(t, loose.Converged)
	assert.LessOrEqual(t, loose.Iterations, exact.Iterations)
}

func TestRelocate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Relocate(ctx, []vector.Point{{0}, {1}}, []vector.Point{{0}}, sqEuclid)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelocate_InvalidInput(t *testing.T) {
	ctx := context.Background()
	points := []vector.Point{{0, 0}, {1, 1}}

	_, err := Relocate(ctx, points, nil, sqEuclid)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Relocate(ctx, points, []vector.Point{{0, 0}, {1, 1}, {2, 2}}, sqEuclid)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Relocate(ctx, points, []vector.Point{{0}}, sqEuclid)
	var dm *vector.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
