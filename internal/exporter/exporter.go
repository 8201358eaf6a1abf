// Package exporter persists datasets as Parquet. Each dataset becomes a
// directory of part files, one file per partition.
package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/csvpq/csvpq-go/internal/dataset"
)

// ErrTargetExists is returned when the target directory already holds data
// and overwrite mode is off.
var ErrTargetExists = errors.New("target path already exists")

// Options controls how a dataset is written.
type Options struct {
	Partitions int  // number of part files; 0 means 1
	Overwrite  bool // remove any pre-existing content at the target path
}

// Result describes a completed write.
type Result struct {
	Path      string
	PartFiles []string
	RowCount  int
}

// ProgressCallback is called after each partition is flushed with the total
// number of rows written so far.
type ProgressCallback func(targetDir string, rowsWritten int64)

// Write persists a dataset as Parquet under targetDir, e.g.
// out/EmissionsByCountry.parquet/part-00000.snappy.parquet. Rows are split
// into contiguous chunks, one per partition; an empty dataset still writes
// schema-only part files so readers can recover the schema.
//
// Column names must already be Parquet-safe (see dataset.FixColumns);
// Write fails rather than writing a file other tools cannot read back.
func Write(ds dataset.Dataset, targetDir string, opts Options, progress ProgressCallback) (*Result, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	if err := checkColumnNames(ds); err != nil {
		return nil, err
	}

	partitions := opts.Partitions
	if partitions == 0 {
		partitions = 1
	}
	if partitions < 0 {
		return nil, fmt.Errorf("invalid partition count %d", partitions)
	}

	if opts.Overwrite {
		if err := os.RemoveAll(targetDir); err != nil {
			return nil, fmt.Errorf("failed to clear target path: %w", err)
		}
	} else if entries, err := os.ReadDir(targetDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTargetExists, targetDir)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	schema := buildSchema(filepath.Base(targetDir), ds.Columns)

	result := &Result{Path: targetDir, RowCount: ds.NumRows()}
	rowsWritten := int64(0)

	for part, chunk := range splitRows(ds.Rows, partitions) {
		name := fmt.Sprintf("part-%05d.snappy.parquet", part)
		path := filepath.Join(targetDir, name)

		if err := writePartFile(path, schema, ds.Columns, chunk); err != nil {
			return nil, fmt.Errorf("failed to write partition %d: %w", part, err)
		}
		result.PartFiles = append(result.PartFiles, path)
		rowsWritten += int64(len(chunk))

		if progress != nil {
			progress(targetDir, rowsWritten)
		}
	}

	return result, nil
}

// checkColumnNames rejects names Parquet cannot represent. Cleanup is the
// Fixer's job; the writer only refuses to persist names it missed.
func checkColumnNames(ds dataset.Dataset) error {
	for _, col := range ds.Columns {
		if col.Name == "" {
			return fmt.Errorf("column name is empty after sanitization")
		}
		if dataset.SanitizeColumnName(col.Name) != col.Name {
			return fmt.Errorf("column name %q contains characters invalid in parquet", col.Name)
		}
	}
	return nil
}

// buildSchema maps dataset columns onto a flat parquet group. Every field
// is optional since any cell may be missing in the source CSV.
func buildSchema(name string, columns []dataset.Column) *parquet.Schema {
	group := parquet.Group{}
	for _, col := range columns {
		group[col.Name] = parquet.Optional(leafNode(col.Type))
	}
	return parquet.NewSchema(name, group)
}

func leafNode(t dataset.Type) parquet.Node {
	switch t {
	case dataset.Int64:
		return parquet.Int(64)
	case dataset.Double:
		return parquet.Leaf(parquet.DoubleType)
	case dataset.Boolean:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// splitRows divides rows into n contiguous chunks. Leading chunks are one
// row larger when the split is uneven. n schema-only chunks come back for
// an empty dataset.
func splitRows(rows [][]any, n int) [][][]any {
	chunks := make([][][]any, n)
	base := len(rows) / n
	extra := len(rows) % n

	offset := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		chunks[i] = rows[offset : offset+size]
		offset += size
	}
	return chunks
}

func writePartFile(path string, schema *parquet.Schema, columns []dataset.Column, rows [][]any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create part file: %w", err)
	}

	writer := parquet.NewGenericWriter[map[string]any](file, schema,
		parquet.Compression(&parquet.Snappy))

	records := make([]map[string]any, len(rows))
	for i, row := range rows {
		record := make(map[string]any, len(columns))
		for j, col := range columns {
			if row[j] != nil {
				record[col.Name] = row[j]
			}
		}
		records[i] = record
	}

	if len(records) > 0 {
		if _, err := writer.Write(records); err != nil {
			writer.Close()
			file.Close()
			return fmt.Errorf("failed to write rows: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
