// Package table provides the in-memory container an ingestion job fills:
// a named, ordered collection of typed columns. Dataframe-style operations
// (filtering, joins, aggregation) are out of scope; sinks and CLI output
// read columns directly.
package table

import (
	"fmt"
	"strings"

	"csvtable/internal/column"
)

// Table is a named set of equally sized columns.
type Table struct {
	name string
	cols []column.Column
}

// New creates an empty table.
func New(name string) *Table {
	return &Table{name: name}
}

// Name returns the table's display name.
func (t *Table) Name() string { return t.name }

// AddColumn appends a column. Returns an error if a column with the same
// name already exists.
func (t *Table) AddColumn(c column.Column) error {
	if _, ok := t.Column(c.Name()); ok {
		return fmt.Errorf("table %q: duplicate column %q", t.name, c.Name())
	}
	t.cols = append(t.cols, c)
	return nil
}

// Columns returns the columns in source order. The returned slice is shared;
// callers must not modify it.
func (t *Table) Columns() []column.Column { return t.cols }

// Column looks a column up by name.
func (t *Table) Column(name string) (column.Column, bool) {
	for _, c := range t.cols {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.cols) }

// RowCount returns the number of rows, taken from the first column.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Size()
}

// Row renders row i as text cells, one per column.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.ValueString(i)
	}
	return row
}

// String returns a one-line summary for logs.
func (t *Table) String() string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = fmt.Sprintf("%s(%s)", c.Name(), c.Type())
	}
	return fmt.Sprintf("%s[%d rows: %s]", t.name, t.RowCount(), strings.Join(names, ", "))
}
