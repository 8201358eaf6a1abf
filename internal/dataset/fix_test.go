package dataset

import (
	"errors"
	"reflect"
	"testing"
)

func sampleDataset() Dataset {
	return Dataset{
		Columns: []Column{
			{Name: "My Awesome Column", Type: Utf8},
			{Name: "(Another) Awesome Column", Type: Utf8},
		},
		Rows: [][]any{
			{"Germany", "New Zealand"},
			{"Australia", "UK"},
		},
	}
}

func TestFixColumns(t *testing.T) {
	in := sampleDataset()
	out, err := FixColumns(in)
	if err != nil {
		t.Fatalf("FixColumns() error = %v", err)
	}

	wantNames := []string{"My_Awesome_Column", "Another_Awesome_Column"}
	if !reflect.DeepEqual(out.ColumnNames(), wantNames) {
		t.Errorf("ColumnNames() = %v, want %v", out.ColumnNames(), wantNames)
	}

	if out.NumRows() != in.NumRows() {
		t.Errorf("NumRows() = %d, want %d", out.NumRows(), in.NumRows())
	}
	if !reflect.DeepEqual(out.Rows, in.Rows) {
		t.Errorf("Rows changed: got %v, want %v", out.Rows, in.Rows)
	}
	for i := range out.Columns {
		if out.Columns[i].Type != in.Columns[i].Type {
			t.Errorf("column %d type = %v, want %v", i, out.Columns[i].Type, in.Columns[i].Type)
		}
	}
}

func TestFixColumnsDoesNotMutateInput(t *testing.T) {
	in := sampleDataset()
	if _, err := FixColumns(in); err != nil {
		t.Fatalf("FixColumns() error = %v", err)
	}

	wantNames := []string{"My Awesome Column", "(Another) Awesome Column"}
	if !reflect.DeepEqual(in.ColumnNames(), wantNames) {
		t.Errorf("input column names changed: got %v, want %v", in.ColumnNames(), wantNames)
	}
}

func TestFixColumnsEmptySchema(t *testing.T) {
	in := Dataset{Rows: [][]any{{}, {}, {}}}
	out, err := FixColumns(in)
	if err != nil {
		t.Fatalf("FixColumns() error = %v", err)
	}
	if out.NumColumns() != 0 {
		t.Errorf("NumColumns() = %d, want 0", out.NumColumns())
	}
	if out.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", out.NumRows())
	}
}

func TestFixColumnsDuplicateAfterSanitize(t *testing.T) {
	in := Dataset{
		Columns: []Column{
			{Name: "total emissions", Type: Double},
			{Name: "total-emissions", Type: Double},
		},
	}

	_, err := FixColumns(in)
	if err == nil {
		t.Fatal("FixColumns() expected error, got nil")
	}

	var dupErr *DuplicateColumnNameError
	if !errors.As(err, &dupErr) {
		t.Fatalf("error type = %T, want *DuplicateColumnNameError", err)
	}
	if dupErr.First != "total emissions" || dupErr.Second != "total-emissions" {
		t.Errorf("originals = %q, %q; want the two colliding names", dupErr.First, dupErr.Second)
	}
	if dupErr.Sanitized != "total_emissions" {
		t.Errorf("Sanitized = %q, want %q", dupErr.Sanitized, "total_emissions")
	}
}

func TestDatasetValidate(t *testing.T) {
	ok := sampleDataset()
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	ragged := Dataset{
		Columns: []Column{{Name: "a"}, {Name: "b"}},
		Rows:    [][]any{{"1", "2"}, {"3"}},
	}
	if err := ragged.Validate(); err == nil {
		t.Error("Validate() expected error for ragged rows, got nil")
	}
}
