package distance

import (
	"math"
	"testing"

	"github.com/hewlib/hew/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     vector.Point
		expected float64
	}{
		{"Simple", vector.Point{1, 2, 3}, vector.Point{4, 5, 6}, 27},
		{"Zero", vector.Point{0, 0, 0}, vector.Point{0, 0, 0}, 0},
		{"Identical", vector.Point{1, 2, 3}, vector.Point{1, 2, 3}, 0},
		{"Mixed", vector.Point{1, -1}, vector.Point{-1, 1}, 8}, // (1 - -1)^2 + (-1 - 1)^2 = 4 + 4 = 8
		{"Empty", vector.Point{}, vector.Point{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredEuclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.InDelta(t, got, SquaredEuclidean(tt.b, tt.a), 1e-12)
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     vector.Point
		expected float64
	}{
		{"Same", vector.Point{1, 0}, vector.Point{2, 0}, 0},
		{"Orthogonal", vector.Point{1, 0}, vector.Point{0, 3}, math.Pi / 2},
		{"Opposite", vector.Point{1, 1}, vector.Point{-1, -1}, math.Pi},
		{"ZeroVector", vector.Point{0, 0}, vector.Point{1, 1}, 0},
		{"BothZero", vector.Point{0, 0}, vector.Point{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.expected, got, 1e-7)
		})
	}

	t.Run("Clamped", func(t *testing.T) {
		// Parallel vectors whose similarity rounds above 1.
		a := vector.Point{0.1, 0.2, 0.3}
		b := vector.Point{0.1 * 3, 0.2 * 3, 0.3 * 3}
		got := Cosine(a, b)
		assert.False(t, math.IsNaN(got))
		assert.InDelta(t, 0.0, got, 1e-7)
	})
}

func TestManhattan(t *testing.T) {
	assert.InDelta(t, 9.0, Manhattan(vector.Point{1, 2, 3}, vector.Point{4, 5, 6}), 1e-12)
	assert.InDelta(t, 4.0, Manhattan(vector.Point{1, -1}, vector.Point{-1, 1}), 1e-12)
	assert.InDelta(t, 0.0, Manhattan(vector.Point{}, vector.Point{}), 1e-12)
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "squared-euclidean", MetricSquaredEuclidean.String())
		assert.Equal(t, "cosine", MetricCosine.String())
		assert.Equal(t, "manhattan", MetricManhattan.String())
		assert.Equal(t, "unknown(99)", Metric(99).String())
	})

	t.Run("Parse", func(t *testing.T) {
		for _, m := range []Metric{MetricSquaredEuclidean, MetricCosine, MetricManhattan} {
			got, err := ParseMetric(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, got)
		}

		got, err := ParseMetric(" L2 ")
		require.NoError(t, err)
		assert.Equal(t, MetricSquaredEuclidean, got)

		_, err = ParseMetric("hamming")
		assert.Error(t, err)
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricSquaredEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 27.0, f.Distance(vector.Point{1, 2, 3}, vector.Point{4, 5, 6}), 1e-12)

		f, err = Provider(MetricCosine)
		require.NoError(t, err)
		assert.InDelta(t, math.Pi/2, f.Distance(vector.Point{1, 0}, vector.Point{0, 1}), 1e-12)

		f, err = Provider(MetricManhattan)
		require.NoError(t, err)
		assert.InDelta(t, 9.0, f.Distance(vector.Point{1, 2, 3}, vector.Point{4, 5, 6}), 1e-12)

		_, err = Provider(Metric(99))
		assert.Error(t, err)
	})
}
