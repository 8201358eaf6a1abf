package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/csvpq/csvpq-go/internal/dataset"
)

func fixedDataset() dataset.Dataset {
	return dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "My_Awesome_Column", Type: dataset.Utf8},
			{Name: "Another_Awesome_Column", Type: dataset.Utf8},
		},
		Rows: [][]any{
			{"Germany", "New Zealand"},
			{"Australia", "UK"},
		},
	}
}

type countryRecord struct {
	First  *string `parquet:"My_Awesome_Column"`
	Second *string `parquet:"Another_Awesome_Column"`
}

func TestWriteSinglePartition(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "countries.parquet")

	result, err := Write(fixedDataset(), targetDir, Options{Partitions: 1, Overwrite: true}, nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if result.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", result.RowCount)
	}
	if len(result.PartFiles) != 1 {
		t.Fatalf("PartFiles = %d, want 1", len(result.PartFiles))
	}
	if base := filepath.Base(result.PartFiles[0]); base != "part-00000.snappy.parquet" {
		t.Errorf("part file = %q, want part-00000.snappy.parquet", base)
	}

	rows, err := parquet.ReadFile[countryRecord](result.PartFiles[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0].First == nil || *rows[0].First != "Germany" {
		t.Errorf("rows[0].First = %v, want Germany", rows[0].First)
	}
	if rows[1].Second == nil || *rows[1].Second != "UK" {
		t.Errorf("rows[1].Second = %v, want UK", rows[1].Second)
	}
}

func TestWriteTypedColumns(t *testing.T) {
	ds := dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "Year", Type: dataset.Int64},
			{Name: "Temp", Type: dataset.Double},
			{Name: "Member", Type: dataset.Boolean},
		},
		Rows: [][]any{
			{int64(1990), 1.5, true},
			{int64(1991), nil, false},
		},
	}
	targetDir := filepath.Join(t.TempDir(), "typed.parquet")

	result, err := Write(ds, targetDir, Options{Overwrite: true}, nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	type typedRecord struct {
		Year   *int64   `parquet:"Year"`
		Temp   *float64 `parquet:"Temp"`
		Member *bool    `parquet:"Member"`
	}
	rows, err := parquet.ReadFile[typedRecord](result.PartFiles[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0].Year == nil || *rows[0].Year != 1990 {
		t.Errorf("rows[0].Year = %v, want 1990", rows[0].Year)
	}
	if rows[0].Temp == nil || *rows[0].Temp != 1.5 {
		t.Errorf("rows[0].Temp = %v, want 1.5", rows[0].Temp)
	}
	if rows[1].Temp != nil {
		t.Errorf("rows[1].Temp = %v, want nil for missing cell", *rows[1].Temp)
	}
	if rows[1].Member == nil || *rows[1].Member != false {
		t.Errorf("rows[1].Member = %v, want false", rows[1].Member)
	}
}

func TestWriteMultiplePartitions(t *testing.T) {
	ds := dataset.Dataset{
		Columns: []dataset.Column{{Name: "n", Type: dataset.Int64}},
	}
	for i := 0; i < 5; i++ {
		ds.Rows = append(ds.Rows, []any{int64(i)})
	}
	targetDir := filepath.Join(t.TempDir(), "split.parquet")

	result, err := Write(ds, targetDir, Options{Partitions: 2, Overwrite: true}, nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(result.PartFiles) != 2 {
		t.Fatalf("PartFiles = %d, want 2", len(result.PartFiles))
	}

	type nRecord struct {
		N *int64 `parquet:"n"`
	}
	total := 0
	for _, part := range result.PartFiles {
		rows, err := parquet.ReadFile[nRecord](part)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", part, err)
		}
		total += len(rows)
	}
	if total != 5 {
		t.Errorf("total rows across partitions = %d, want 5", total)
	}
}

func TestWriteEmptyDataset(t *testing.T) {
	ds := dataset.Dataset{
		Columns: []dataset.Column{{Name: "Country", Type: dataset.Utf8}},
	}
	targetDir := filepath.Join(t.TempDir(), "empty.parquet")

	result, err := Write(ds, targetDir, Options{Overwrite: true}, nil)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(result.PartFiles) != 1 {
		t.Fatalf("PartFiles = %d, want 1", len(result.PartFiles))
	}

	type emptyRecord struct {
		Country *string `parquet:"Country"`
	}
	rows, err := parquet.ReadFile[emptyRecord](result.PartFiles[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("read %d rows, want 0", len(rows))
	}
}

func TestWriteOverwriteReplacesOldData(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "countries.parquet")

	if _, err := Write(fixedDataset(), targetDir, Options{Overwrite: true}, nil); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}

	// Leave a stale file behind to prove the directory is cleared.
	stale := filepath.Join(targetDir, "part-99999.snappy.parquet")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Write(fixedDataset(), targetDir, Options{Overwrite: true}, nil); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale part file survived overwrite")
	}
}

func TestWriteRefusesExistingTarget(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "countries.parquet")

	if _, err := Write(fixedDataset(), targetDir, Options{Overwrite: true}, nil); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}

	_, err := Write(fixedDataset(), targetDir, Options{Overwrite: false}, nil)
	if !errors.Is(err, ErrTargetExists) {
		t.Errorf("error = %v, want ErrTargetExists", err)
	}
}

func TestWriteRejectsInvalidColumnNames(t *testing.T) {
	tests := []struct {
		name   string
		column string
	}{
		{"space", "My Awesome Column"},
		{"paren", "Total(net)"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.Dataset{Columns: []dataset.Column{{Name: tt.column, Type: dataset.Utf8}}}
			_, err := Write(ds, filepath.Join(t.TempDir(), "bad.parquet"), Options{Overwrite: true}, nil)
			if err == nil {
				t.Fatalf("Write() expected error for column %q, got nil", tt.column)
			}
			if !strings.Contains(err.Error(), "column name") {
				t.Errorf("error = %v, want column name complaint", err)
			}
		})
	}
}

func TestWriteProgressCallback(t *testing.T) {
	var rowsSeen []int64
	targetDir := filepath.Join(t.TempDir(), "progress.parquet")

	_, err := Write(fixedDataset(), targetDir, Options{Partitions: 2, Overwrite: true},
		func(dir string, rows int64) { rowsSeen = append(rowsSeen, rows) })
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(rowsSeen) != 2 {
		t.Fatalf("progress calls = %d, want 2", len(rowsSeen))
	}
	if rowsSeen[1] != 2 {
		t.Errorf("final rowsWritten = %d, want 2", rowsSeen[1])
	}
}
