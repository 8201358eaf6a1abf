package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/csvpq/csvpq-go/internal/dataset"
)

// Result describes a completed load.
type Result struct {
	Dataset  dataset.Dataset
	FilePath string
	RowCount int
}

// Options controls how an input file is parsed.
type Options struct {
	Delimiter rune // 0 means detect from the file extension
	HasHeader bool
}

// ProgressCallback is called periodically with the number of rows read.
type ProgressCallback func(filePath string, rowsRead int64)

// Load reads a CSV/TSV file into a Dataset. Column types are inferred from
// the values: int64 if every non-empty cell parses as an integer, double if
// every non-empty cell parses as a number, boolean if every non-empty cell
// is true/false, utf8 otherwise. Empty cells become nil and do not veto a
// narrower type.
func Load(filePath string, opts Options, progress ProgressCallback) (*Result, error) {
	file, err := OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(filePath)
	}

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var headers []string
	var raw [][]string

	if opts.HasHeader {
		headerRow, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		headers = headerRow
	} else {
		firstRow, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read first row: %w", err)
		}
		headers = make([]string, len(firstRow))
		for i := range headers {
			headers[i] = fmt.Sprintf("col%d", i+1)
		}
		raw = append(raw, firstRow)
	}

	rowCount := int64(len(raw))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		raw = append(raw, record)
		rowCount++

		if progress != nil && rowCount%1000 == 0 {
			progress(filePath, rowCount)
		}
	}
	if progress != nil {
		progress(filePath, rowCount)
	}

	ds, err := buildDataset(headers, raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		Dataset:  ds,
		FilePath: filePath,
		RowCount: len(raw),
	}, nil
}

// buildDataset infers column types over raw string cells and converts them
// to typed values.
func buildDataset(headers []string, raw [][]string) (dataset.Dataset, error) {
	columns := make([]dataset.Column, len(headers))
	for j, name := range headers {
		columns[j] = dataset.Column{Name: name, Type: inferColumnType(raw, j)}
	}

	rows := make([][]any, len(raw))
	for i, record := range raw {
		row := make([]any, len(headers))
		for j := range headers {
			var cell string
			if j < len(record) {
				cell = record[j]
			}
			value, err := convertCell(cell, columns[j].Type)
			if err != nil {
				return dataset.Dataset{}, fmt.Errorf("row %d column %q: %w", i+1, headers[j], err)
			}
			row[j] = value
		}
		rows[i] = row
	}

	return dataset.Dataset{Columns: columns, Rows: rows}, nil
}

// inferColumnType scans column j across all rows and returns the narrowest
// type every non-empty cell fits. Int64 is checked before Boolean so that
// 0/1 columns stay numeric.
func inferColumnType(raw [][]string, j int) dataset.Type {
	isInt, isDouble, isBool := true, true, true
	sawValue := false

	for _, record := range raw {
		if j >= len(record) || record[j] == "" {
			continue
		}
		sawValue = true
		cell := record[j]

		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isDouble {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isDouble = false
			}
		}
		if isBool {
			if cell != "true" && cell != "false" && cell != "True" && cell != "False" {
				isBool = false
			}
		}
		if !isInt && !isDouble && !isBool {
			return dataset.Utf8
		}
	}

	switch {
	case !sawValue:
		return dataset.Utf8
	case isInt:
		return dataset.Int64
	case isDouble:
		return dataset.Double
	case isBool:
		return dataset.Boolean
	default:
		return dataset.Utf8
	}
}

// convertCell converts one raw cell to the column's inferred type.
// Empty cells are nil regardless of type.
func convertCell(cell string, t dataset.Type) (any, error) {
	if cell == "" {
		return nil, nil
	}
	switch t {
	case dataset.Int64:
		return strconv.ParseInt(cell, 10, 64)
	case dataset.Double:
		return strconv.ParseFloat(cell, 64)
	case dataset.Boolean:
		return cell == "true" || cell == "True", nil
	default:
		return cell, nil
	}
}
