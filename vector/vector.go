package vector

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Point is an ordered, fixed-length tuple of real numbers.
type Point []float64

// Clone returns a copy of p that does not share backing storage.
func (p Point) Clone() Point {
	return slices.Clone(p)
}

// Equal reports whether a and b have identical coordinates.
func Equal(a, b Point) bool {
	return slices.Equal(a, b)
}

// Dim returns the dimensionality shared by all points.
// The first point establishes it; a zero-dimensional dataset is rejected, as
// is any NaN or infinite coordinate.
func Dim(points []Point) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmpty
	}
	d := len(points[0])
	if d == 0 {
		return 0, &ErrDimensionMismatch{Index: 0, Expected: 1, Actual: 0}
	}
	for i, p := range points {
		if len(p) != d {
			return 0, &ErrDimensionMismatch{Index: i, Expected: d, Actual: len(p)}
		}
		for x, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, &ErrNonFinite{Index: i, Coordinate: x, Value: v}
			}
		}
	}
	return d, nil
}

// Bounds determines the per-dimension minimum and maximum of points.
func Bounds(points []Point) (mins, maxs Point, err error) {
	d, err := Dim(points)
	if err != nil {
		return nil, nil, err
	}

	mins = make(Point, d)
	maxs = make(Point, d)
	column := make([]float64, len(points))
	for x := range d {
		for i, p := range points {
			column[i] = p[x]
		}
		mins[x] = floats.Min(column)
		maxs[x] = floats.Max(column)
	}

	return mins, maxs, nil
}

// Centroid returns the coordinate-wise arithmetic mean of points.
func Centroid(points []Point) (Point, error) {
	d, err := Dim(points)
	if err != nil {
		return nil, err
	}

	c := make(Point, d)
	for _, p := range points {
		floats.Add(c, p)
	}
	floats.Scale(1/float64(len(points)), c)

	return c, nil
}

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b Point) float64 {
	return floats.Dot(a, b)
}

// Length calculates the Euclidean norm of a.
func Length(a Point) float64 {
	return floats.Norm(a, 2)
}
