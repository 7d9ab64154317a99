package models

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a referenced column is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when a table would hold two columns of the same name.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrRaggedTable is returned when columns differ in length.
	ErrRaggedTable = errors.New("column length mismatch")
)

// Table is an immutable, column-oriented table. Every operation returns a new
// Table; column slices are shared between tables and never written after
// construction.
type Table struct {
	names []string
	index map[string]int
	cols  [][]Value
	rows  int
}

// NewTable builds a table from named columns of equal length. The column
// slices are copied.
func NewTable(names []string, cols [][]Value) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrRaggedTable, len(names), len(cols))
	}
	t := &Table{index: make(map[string]int, len(names))}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		if i == 0 {
			t.rows = len(cols[i])
		} else if len(cols[i]) != t.rows {
			return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrRaggedTable, name, len(cols[i]), t.rows)
		}
		t.index[name] = i
		t.names = append(t.names, name)
		t.cols = append(t.cols, append([]Value(nil), cols[i]...))
	}
	return t, nil
}

// FromRecords builds a table from a header and raw string records, as read
// from CSV. Short records are padded with missing cells.
func FromRecords(header []string, records [][]string) (*Table, error) {
	cols := make([][]Value, len(header))
	for c := range cols {
		cols[c] = make([]Value, len(records))
	}
	for r, rec := range records {
		for c := range header {
			if c < len(rec) {
				cols[c][r] = ParseRaw(rec[c])
			}
		}
	}
	return newTableOwned(header, cols)
}

// newTableOwned is NewTable without copying; cols must not be used afterwards.
func newTableOwned(names []string, cols [][]Value) (*Table, error) {
	t := &Table{names: append([]string(nil), names...), index: make(map[string]int, len(names)), cols: cols}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		t.index[name] = i
	}
	if len(cols) > 0 {
		t.rows = len(cols[0])
	}
	for i, col := range cols {
		if len(col) != t.rows {
			return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrRaggedTable, names[i], len(col), t.rows)
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return append([]string(nil), t.names...) }

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return append([]Value(nil), t.cols[i]...), nil
}

// At returns a single cell.
func (t *Table) At(row int, name string) (Value, error) {
	i, ok := t.index[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	if row < 0 || row >= t.rows {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", row, t.rows)
	}
	return t.cols[i][row], nil
}

// WithColumn returns a table where the named column holds vals. An existing
// column keeps its position; a new one is appended.
func (t *Table) WithColumn(name string, vals []Value) (*Table, error) {
	if len(t.names) > 0 && len(vals) != t.rows {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrRaggedTable, name, len(vals), t.rows)
	}
	names := t.Columns()
	cols := append([][]Value(nil), t.cols...)
	col := append([]Value(nil), vals...)
	if i, ok := t.index[name]; ok {
		cols[i] = col
	} else {
		names = append(names, name)
		cols = append(cols, col)
	}
	return newTableOwned(names, cols)
}

// Without returns a table lacking the named columns. Names that are not
// present are ignored.
func (t *Table) Without(drop ...string) *Table {
	skip := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		skip[d] = struct{}{}
	}
	out := &Table{index: make(map[string]int, len(t.names)), rows: t.rows}
	for i, name := range t.names {
		if _, ok := skip[name]; ok {
			continue
		}
		out.index[name] = len(out.names)
		out.names = append(out.names, name)
		out.cols = append(out.cols, t.cols[i])
	}
	return out
}

// Filter returns the rows for which keep returns true, in order.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var idx []int
	for r := 0; r < t.rows; r++ {
		if keep(r) {
			idx = append(idx, r)
		}
	}
	out := &Table{names: t.Columns(), index: make(map[string]int, len(t.names)), rows: len(idx)}
	for i, name := range t.names {
		out.index[name] = i
		col := make([]Value, len(idx))
		for j, r := range idx {
			col[j] = t.cols[i][r]
		}
		out.cols = append(out.cols, col)
	}
	return out
}

// Records renders every row as strings in column order.
func (t *Table) Records() [][]string {
	out := make([][]string, t.rows)
	for r := 0; r < t.rows; r++ {
		rec := make([]string, len(t.cols))
		for c := range t.cols {
			rec[c] = t.cols[c][r].String()
		}
		out[r] = rec
	}
	return out
}

// ColumnKind returns the kind shared by every non-missing cell of a column,
// KindText when kinds are mixed and KindMissing when the column is empty.
func (t *Table) ColumnKind(name string) (Kind, error) {
	i, ok := t.index[name]
	if !ok {
		return KindMissing, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	kind := KindMissing
	for _, v := range t.cols[i] {
		if v.IsMissing() {
			continue
		}
		if kind == KindMissing {
			kind = v.Kind()
		} else if kind != v.Kind() {
			return KindText, nil
		}
	}
	return kind, nil
}
