// Package table provides the row-oriented in-memory table produced by the
// loaders and the relational merge of two tables on a key column.
package table

import (
	"github.com/abelzeko/dino-velocity/internal/entities"
)

// Cell is a single raw value. Null cells carry no value.
type Cell struct {
	Value string
	Valid bool
}

// Value returns a present cell.
func Value(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null is the missing-value cell.
var Null = Cell{}

// Table holds named columns and rows of raw cells. Column typing is left to
// consumers.
type Table struct {
	Columns []string
	Rows    [][]Cell
	index   map[string]int
}

// New creates a table with the given header. Duplicate column names keep the
// first occurrence for lookups.
func New(columns []string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// AppendRow adds a row; it must have one cell per column.
func (t *Table) AppendRow(row []Cell) error {
	if len(row) != len(t.Columns) {
		return entities.NewOpError("table.append_row", entities.KindInvalidArgument, "",
			"row has %d cells, expected %d: %w", len(row), len(t.Columns), entities.ErrInvalidArgument)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.index == nil {
		t.buildIndex()
	}
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a column with this name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Get returns the cell at row i in the named column.
func (t *Table) Get(i int, column string) (Cell, bool) {
	c, ok := t.ColumnIndex(column)
	if !ok || i < 0 || i >= len(t.Rows) {
		return Null, false
	}
	return t.Rows[i][c], true
}
