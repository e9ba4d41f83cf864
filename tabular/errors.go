package tabular

import (
	"errors"
	"fmt"

	"github.com/hewlib/hew/vector"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = fmt.Errorf("%w: missing header row", vector.ErrInvalidInput)

// ErrNotNumeric reports a cell that is neither a number nor a boolean.
type ErrNotNumeric struct {
	Row   int
	Field string
	Value string
}

func (e *ErrNotNumeric) Error() string {
	return fmt.Sprintf("row %d: field %q: value %q is not numeric", e.Row, e.Field, e.Value)
}

func (e *ErrNotNumeric) Unwrap() error { return vector.ErrInvalidInput }

// ErrUnsupportedCompression is returned for an unknown Compression value.
var ErrUnsupportedCompression = errors.New("unsupported compression")
