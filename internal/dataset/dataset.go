// Package dataset defines the in-memory tabular dataset model and the
// column-name cleanup applied before Parquet export.
package dataset

import "fmt"

// Type is the inferred value type of a column.
type Type int

const (
	// Utf8 is the fallback type; any column holds UTF8 safely.
	Utf8 Type = iota
	Int64
	Double
	Boolean
)

// String returns the lowercase type name used in logs and errors.
func (t Type) String() string {
	switch t {
	case Int64:
		return "int64"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	default:
		return "utf8"
	}
}

// Column describes one column of a dataset: its name and inferred type.
type Column struct {
	Name string
	Type Type
}

// Dataset is an ordered collection of typed columns plus row values.
// Rows are column-indexed: Rows[i][j] holds the value of column j in row i.
// A nil cell represents a missing value. Transformations return new
// Dataset values and never write through shared row storage.
type Dataset struct {
	Columns []Column
	Rows    [][]any
}

// NumColumns returns the number of columns.
func (d Dataset) NumColumns() int { return len(d.Columns) }

// NumRows returns the number of rows.
func (d Dataset) NumRows() int { return len(d.Rows) }

// ColumnNames returns the column names in order.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks that every row has exactly one cell per column.
func (d Dataset) Validate() error {
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(d.Columns))
		}
	}
	return nil
}
