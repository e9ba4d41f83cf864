package vector

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of all caller contract violations:
// empty datasets, out-of-range cluster counts, mixed dimensionality and
// non-finite coordinates.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmpty is returned for operations that are undefined on zero points.
var ErrEmpty = fmt.Errorf("%w: empty point set", ErrInvalidInput)

// ErrDimensionMismatch indicates that a point does not share the
// dimensionality established by the first point of a dataset.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *ErrDimensionMismatch) Unwrap() error { return ErrInvalidInput }

// ErrNonFinite reports a NaN or infinite coordinate.
type ErrNonFinite struct {
	Index      int
	Coordinate int
	Value      float64
}

func (e *ErrNonFinite) Error() string {
	return fmt.Sprintf("point %d coordinate %d is not finite: %v", e.Index, e.Coordinate, e.Value)
}

func (e *ErrNonFinite) Unwrap() error { return ErrInvalidInput }
