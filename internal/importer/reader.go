// Package importer loads CSV/TSV files into in-memory datasets with
// inferred column types.
package importer

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile opens an input file, transparently decompressing .gz and .bz2
// based on the file extension.
func OpenFile(filePath string) (io.ReadCloser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".gz":
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &decompressedFile{reader: gz, closers: []io.Closer{gz, file}}, nil
	case ".bz2":
		return &decompressedFile{reader: bzip2.NewReader(file), closers: []io.Closer{file}}, nil
	default:
		return file, nil
	}
}

// decompressedFile reads from a decompressing reader and closes every layer.
type decompressedFile struct {
	reader  io.Reader
	closers []io.Closer
}

func (d *decompressedFile) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressedFile) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// stripCompressionExt removes trailing .gz/.bz2 extensions so the format
// extension underneath can be inspected.
func stripCompressionExt(filePath string) string {
	for {
		ext := strings.ToLower(filepath.Ext(filePath))
		if ext != ".gz" && ext != ".bz2" {
			return filePath
		}
		filePath = strings.TrimSuffix(filePath, filepath.Ext(filePath))
	}
}

// DetectDelimiter picks the field delimiter from the file extension:
// '\t' for .tsv (possibly compressed), ',' otherwise.
func DetectDelimiter(filePath string) rune {
	if strings.ToLower(filepath.Ext(stripCompressionExt(filePath))) == ".tsv" {
		return '\t'
	}
	return ','
}

// DatasetName derives a default dataset name from an input path: the base
// name with compression and format extensions stripped.
func DatasetName(filePath string) string {
	base := filepath.Base(stripCompressionExt(filePath))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
