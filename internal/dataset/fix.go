package dataset

import "fmt"

// DuplicateColumnNameError reports two distinct column names that sanitize
// to the same name. Writing such a dataset would silently lose a column,
// so FixColumns refuses instead.
type DuplicateColumnNameError struct {
	First     string // original name that claimed the sanitized form
	Second    string // original name that collided with it
	Sanitized string
}

func (e *DuplicateColumnNameError) Error() string {
	return fmt.Sprintf("columns %q and %q both sanitize to %q", e.First, e.Second, e.Sanitized)
}

// FixColumns returns a copy of the dataset with every column name passed
// through SanitizeColumnName. Column order, types, row values and row count
// are unchanged, and the input dataset is not modified.
//
// If two distinct original names map to the same sanitized name, a
// *DuplicateColumnNameError is returned.
func FixColumns(d Dataset) (Dataset, error) {
	columns := make([]Column, len(d.Columns))
	seen := make(map[string]string, len(d.Columns))

	for i, col := range d.Columns {
		sanitized := SanitizeColumnName(col.Name)
		if first, ok := seen[sanitized]; ok {
			return Dataset{}, &DuplicateColumnNameError{
				First:     first,
				Second:    col.Name,
				Sanitized: sanitized,
			}
		}
		seen[sanitized] = col.Name
		columns[i] = Column{Name: sanitized, Type: col.Type}
	}

	// Row storage is shared, not copied: rows are never mutated through a
	// Dataset, only replaced wholesale.
	return Dataset{Columns: columns, Rows: d.Rows}, nil
}
