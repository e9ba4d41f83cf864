package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformPoints(8, 3, -1, 1)

	assert.Len(t, v, 8)
	for _, p := range v {
		assert.Len(t, p, 3)
		for _, x := range p {
			assert.GreaterOrEqual(t, x, -1.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestGaussianBlobs(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.GaussianBlobs(FourBlobCenters, 50, 0.1)

	assert.Len(t, v, 200)
	for i, p := range v {
		// 0.5 is five standard deviations away from each center.
		assert.Equal(t, i/50, Quadrant(p), "point %d: %v", i, p)
	}
}

func TestQuadrant(t *testing.T) {
	for i, c := range FourBlobCenters {
		assert.Equal(t, i, Quadrant(c))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.UniformPoints(1, 10, 0, 1)

	rng.Reset()
	v2 := rng.UniformPoints(1, 10, 0, 1)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRand(t *testing.T) {
	a := NewRNG(1).Rand()
	b := NewRNG(1).Rand()
	assert.Equal(t, a.Int63(), b.Int63())
}
