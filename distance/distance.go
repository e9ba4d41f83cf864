package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/hewlib/hew/vector"
	"gonum.org/v1/gonum/floats"
)

// Distance is a pure, symmetric, non-negative function of two points that is
// zero for identical points. Implementations must be safe for concurrent use.
type Distance interface {
	Distance(a, b vector.Point) float64
}

// Func adapts an ordinary function to the Distance interface.
type Func func(a, b vector.Point) float64

// Distance calls f(a, b).
func (f Func) Distance(a, b vector.Point) float64 {
	return f(a, b)
}

// SquaredEuclidean calculates the squared L2 distance between two vectors.
// No square root is taken.
// Assumes vectors are the same length (caller's responsibility).
func SquaredEuclidean(a, b vector.Point) float64 {
	diff := floats.SubTo(make([]float64, len(a)), a, b)
	return floats.Dot(diff, diff)
}

// Cosine calculates the angle between two vectors.
// The cosine similarity is clamped to [-1, 1] before acos so rounding cannot
// produce NaN. Returns 0 if either vector has zero length.
func Cosine(a, b vector.Point) float64 {
	denominator := vector.Length(a) * vector.Length(b)
	if denominator == 0 {
		return 0
	}
	x := vector.Dot(a, b) / denominator
	return math.Acos(min(1, max(x, -1)))
}

// Manhattan calculates the L1 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Manhattan(a, b vector.Point) float64 {
	return floats.Distance(a, b, 1)
}

// Metric selects one of the built-in distance functions.
type Metric int

const (
	MetricSquaredEuclidean Metric = iota
	MetricCosine
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredEuclidean:
		return "squared-euclidean"
	case MetricCosine:
		return "cosine"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric resolves a metric name as produced by Metric.String.
// "euclidean" and "l2" are accepted as aliases of squared-euclidean,
// "l1" as an alias of manhattan.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "squared-euclidean", "euclidean", "l2":
		return MetricSquaredEuclidean, nil
	case "cosine":
		return MetricCosine, nil
	case "manhattan", "l1":
		return MetricManhattan, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", s)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Distance, error) {
	switch m {
	case MetricSquaredEuclidean:
		return Func(SquaredEuclidean), nil
	case MetricCosine:
		return Func(Cosine), nil
	case MetricManhattan:
		return Func(Manhattan), nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
