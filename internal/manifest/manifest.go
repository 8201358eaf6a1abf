// Package manifest records completed dataset ingestions in a SQLite file
// so later pipeline stages can discover what was written and when.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one completed dataset ingestion.
type Run struct {
	Dataset        string
	Source         string
	OutputPath     string
	Rows           int
	Columns        int
	RenamedColumns int
	Duration       time.Duration
	FinishedAt     time.Time
}

// Store is a SQLite-backed manifest of ingestion runs.
type Store struct {
	db     *sql.DB
	Path   string
	IsTemp bool
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	dataset         TEXT NOT NULL,
	source          TEXT NOT NULL,
	output_path     TEXT NOT NULL,
	rows            INTEGER NOT NULL,
	columns         INTEGER NOT NULL,
	renamed_columns INTEGER NOT NULL,
	duration_ms     INTEGER NOT NULL,
	finished_at     TEXT NOT NULL
)`

// Open opens or creates a manifest database. If path is empty, a temporary
// file is used and removed on Close.
func Open(path string) (*Store, error) {
	isTemp := false
	if path == "" {
		tmpFile, err := os.CreateTemp("", "csvpq-manifest-*.db")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary manifest: %w", err)
		}
		tmpFile.Close()
		path = tmpFile.Name()
		isTemp = true
	} else if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create manifest directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		if isTemp {
			os.Remove(path)
		}
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		if isTemp {
			os.Remove(path)
		}
		return nil, fmt.Errorf("failed to initialize manifest schema: %w", err)
	}

	return &Store{db: db, Path: path, IsTemp: isTemp}, nil
}

// Record appends a run to the manifest.
func (s *Store) Record(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (dataset, source, output_path, rows, columns, renamed_columns, duration_ms, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Dataset,
		run.Source,
		run.OutputPath,
		run.Rows,
		run.Columns,
		run.RenamedColumns,
		run.Duration.Milliseconds(),
		run.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Runs returns all recorded runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT dataset, source, output_path, rows, columns, renamed_columns, duration_ms, finished_at
		 FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		var finishedAt string
		if err := rows.Scan(&run.Dataset, &run.Source, &run.OutputPath, &run.Rows,
			&run.Columns, &run.RenamedColumns, &durationMS, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, finishedAt); err == nil {
			run.FinishedAt = ts
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading runs: %w", err)
	}

	return runs, nil
}

// Close closes the database and removes it if it was temporary.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.IsTemp {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove temporary manifest %s: %w", s.Path, err)
		}
	}
	return nil
}
