package kmeans

import (
	"errors"
	"fmt"

	"github.com/hewlib/hew/vector"
)

var (
	// ErrInvalidInput is returned for caller contract violations.
	ErrInvalidInput = vector.ErrInvalidInput

	// ErrNotFound is returned when the gap statistic does not recommend any
	// cluster count within the scanned range.
	ErrNotFound = errors.New("kmeans: no cluster count recommended")
)

// ErrInvalidK indicates a cluster count outside [1, N].
type ErrInvalidK struct {
	K int
	N int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid cluster count %d for %d points", e.K, e.N)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *ErrInvalidK) Unwrap() error { return ErrInvalidInput }
