package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hewlib/hew/vector"
)

// Row maps column names to cell text. Cells past the end of a short line
// are absent.
type Row map[string]string

// Table is a parsed TSV file.
type Table struct {
	Columns []string
	Rows    []Row
}

// Has reports whether name is one of the table's columns.
func (t *Table) Has(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// Read parses tab-separated text. The first line is the header. Lines may be
// shorter or longer than the header; extra cells are dropped.
func Read(r io.Reader) (*Table, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{Columns: append([]string(nil), header...)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}

		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(rec) {
				break
			}
			row[col] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// parseCell converts one cell. Booleans are case-insensitive; NaN and
// infinities are rejected, as are out-of-range numbers.
func parseCell(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Point builds a point from the given fields of row, in field order.
// Missing fields are 0.
func Point(row Row, fields []string) (vector.Point, error) {
	return point(row, fields, 0)
}

func point(row Row, fields []string, index int) (vector.Point, error) {
	p := make(vector.Point, len(fields))
	for j, f := range fields {
		s, ok := row[f]
		if !ok {
			continue
		}
		v, ok := parseCell(s)
		if !ok {
			return nil, &ErrNotNumeric{Row: index, Field: f, Value: s}
		}
		p[j] = v
	}
	return p, nil
}

// ExtractPoints converts every row of t. Row numbers in errors are 1-based
// data rows (the header is not counted).
func ExtractPoints(t *Table, fields []string) ([]vector.Point, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields selected", vector.ErrInvalidInput)
	}

	points := make([]vector.Point, 0, len(t.Rows))
	for i, row := range t.Rows {
		p, err := point(row, fields, i+1)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// Write emits t with resultColumn appended. assignment holds 0-based cluster
// indexes, one per row; they are written 1-based.
//
// Cells are echoed as read: "true" stays "true" rather than the 1 it counted
// as, and a column missing from a row is written empty, not as 0.
func Write(w io.Writer, t *Table, resultColumn string, assignment []int) error {
	if len(assignment) != len(t.Rows) {
		return fmt.Errorf("%w: %d assignments for %d rows", vector.ErrInvalidInput, len(assignment), len(t.Rows))
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	rec := make([]string, len(t.Columns)+1)
	copy(rec, t.Columns)
	rec[len(t.Columns)] = resultColumn
	if err := cw.Write(rec); err != nil {
		return err
	}

	for i, row := range t.Rows {
		for j, col := range t.Columns {
			rec[j] = row[col]
		}
		rec[len(t.Columns)] = strconv.Itoa(assignment[i] + 1)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
