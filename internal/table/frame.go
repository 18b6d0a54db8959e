// Package table holds a minimal column-labelled frame and the column
// naming heuristics the analysis layer relies on.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Frame is an ordered set of named columns over row-major string cells.
// Cells keep their raw text; numeric views coerce per column with NaN for
// anything unparseable, so downstream stats can skip missing values.
type Frame struct {
	cols []string
	rows [][]string
}

func New(cols ...string) *Frame {
	return &Frame{cols: append([]string(nil), cols...)}
}

func (f *Frame) Columns() []string { return append([]string(nil), f.cols...) }

func (f *Frame) Len() int { return len(f.rows) }

// Append adds one row. Short rows are padded with empty cells.
func (f *Frame) Append(row ...string) {
	if len(row) < len(f.cols) {
		padded := make([]string, len(f.cols))
		copy(padded, row)
		row = padded
	}
	f.rows = append(f.rows, row[:len(f.cols)])
}

func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

func (f *Frame) HasColumn(name string) bool { return f.ColumnIndex(name) >= 0 }

// Cell returns the raw cell text, or "" when the column is unknown.
func (f *Frame) Cell(row int, col string) string {
	i := f.ColumnIndex(col)
	if i < 0 || row < 0 || row >= len(f.rows) {
		return ""
	}
	return f.rows[row][i]
}

// Row returns the raw cells of one row.
func (f *Frame) Row(row int) []string {
	return append([]string(nil), f.rows[row]...)
}

// Numeric coerces a column to float64s. Empty or unparseable cells become
// NaN. An unknown column yields all-NaN.
func (f *Frame) Numeric(col string) []float64 {
	i := f.ColumnIndex(col)
	out := make([]float64, len(f.rows))
	for r := range f.rows {
		out[r] = math.NaN()
		if i < 0 {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(f.rows[r][i]), 64); err == nil {
			out[r] = v
		}
	}
	return out
}

// AddColumn appends a column. The value slice must match the row count.
func (f *Frame) AddColumn(name string, values []string) error {
	if len(values) != len(f.rows) {
		return fmt.Errorf("add column %s: %d values for %d rows", name, len(values), len(f.rows))
	}
	f.cols = append(f.cols, name)
	for r := range f.rows {
		f.rows[r] = append(f.rows[r], values[r])
	}
	return nil
}

// Rename renames columns in place per the mapping; unknown keys are ignored.
func (f *Frame) Rename(mapping map[string]string) {
	for i, c := range f.cols {
		if repl, ok := mapping[c]; ok {
			f.cols[i] = repl
		}
	}
}

// isNumeric reports whether every non-empty cell of the column parses as a
// number, with at least one such cell present.
func (f *Frame) isNumeric(col string) bool {
	i := f.ColumnIndex(col)
	if i < 0 {
		return false
	}
	seen := false
	for r := range f.rows {
		cell := strings.TrimSpace(f.rows[r][i])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
