// Package cli provides the command-line interface for csvpq.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csvpq/csvpq-go/internal/config"
	"github.com/csvpq/csvpq-go/internal/dataset"
	"github.com/csvpq/csvpq-go/internal/exporter"
	"github.com/csvpq/csvpq-go/internal/fetch"
	"github.com/csvpq/csvpq-go/internal/importer"
	"github.com/csvpq/csvpq-go/internal/manifest"
)

var (
	// Colors for output
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "csvpq",
	Short: "Ingest CSV datasets as single-partition Parquet",
	Long: `csvpq - CSV to Parquet dataset ingestion

Downloads or reads CSV/TSV datasets, cleans column names that Parquet
rejects (spaces, commas, semicolons, newlines, tabs, '=', '-' become
underscores; braces and parentheses are dropped), and writes each dataset
as snappy-compressed Parquet, one partition per dataset by default.

Features:
  • Local files or http(s) URLs as inputs
  • Compressed inputs (.gz, .bz2)
  • Column type inference (int64, double, boolean, utf8)
  • Overwrite-or-fail output modes
  • Optional SQLite manifest of ingestion runs`,
	Example: `  # Ingest one local file
  csvpq -i EmissionsByCountry.csv -o out/

  # Download and ingest the three climate datasets
  csvpq -o out/ \
    -i https://example.com/EmissionsByCountry.csv \
    -i https://example.com/GlobalTemperatures.csv \
    -i https://example.com/TemperaturesByCountry.csv

  # Custom dataset name and run manifest
  csvpq -i data.csv.gz -n emissions -o out/ --manifest runs.db`,
	RunE: runCommand,
}

func init() {
	rootCmd.Flags().StringSliceP("input", "i", []string{}, "Input CSV/TSV file(s) or http(s) URL(s)")
	rootCmd.Flags().StringSliceP("name", "n", []string{}, "Dataset name(s), positional (default: derived from file name)")
	rootCmd.Flags().StringP("output", "o", "", "Output directory for <name>.parquet dataset directories")
	rootCmd.Flags().String("delimiter", "auto", "Field delimiter: 'comma', 'tab', or 'auto'")
	rootCmd.Flags().BoolP("header", "H", true, "Input files have a header row")
	rootCmd.Flags().Int("partitions", 1, "Number of Parquet part files per dataset")
	rootCmd.Flags().Bool("overwrite", true, "Replace existing output directories")
	rootCmd.Flags().String("manifest", "", "SQLite manifest path recording ingestion runs")
	rootCmd.Flags().Bool("no-progress", false, "Disable progress rendering")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCommand(cmd *cobra.Command, args []string) error {
	inputs, _ := cmd.Flags().GetStringSlice("input")
	names, _ := cmd.Flags().GetStringSlice("name")
	outputDir, _ := cmd.Flags().GetString("output")
	delimiterStr, _ := cmd.Flags().GetString("delimiter")
	hasHeader, _ := cmd.Flags().GetBool("header")
	partitions, _ := cmd.Flags().GetInt("partitions")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	delimiter, err := config.ParseDelimiter(delimiterStr)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		Inputs:       inputs,
		DatasetNames: names,
		OutputDir:    outputDir,
		ManifestPath: manifestPath,
		Delimiter:    delimiter,
		Partitions:   partitions,
		HasHeader:    hasHeader,
		Overwrite:    overwrite,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return run(cmd.Context(), cfg, !noProgress)
}

func run(ctx context.Context, cfg *config.Config, showProgress bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var store *manifest.Store
	if cfg.ManifestPath != "" {
		var err error
		store, err = manifest.Open(cfg.ManifestPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				warnColor.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}()
	}

	tracker := NewProgressTracker(showProgress)
	defer tracker.Stop()

	var staging string
	for _, input := range cfg.Inputs {
		if fetch.IsRemote(input) {
			dir, err := os.MkdirTemp("", "csvpq-staging-")
			if err != nil {
				return fmt.Errorf("failed to create staging directory: %w", err)
			}
			staging = dir
			defer os.RemoveAll(dir)
			break
		}
	}

	for i, input := range cfg.Inputs {
		if err := ingest(ctx, cfg, store, tracker, staging, i, input); err != nil {
			return err
		}
	}

	return nil
}

// ingest runs one input through the whole pipeline:
// fetch (if remote) → load → fix columns → write parquet → manifest.
func ingest(ctx context.Context, cfg *config.Config, store *manifest.Store,
	tracker *ProgressTracker, staging string, index int, input string) error {

	started := time.Now()

	localPath := input
	if fetch.IsRemote(input) {
		tracker.Update(input, "downloading", 0, "")
		path, err := fetch.Download(ctx, input, staging, func(source string, bytesRead int64) {
			tracker.Update(input, "downloading", bytesRead, "bytes")
		})
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", input, err)
		}
		localPath = path
	}

	name := importer.DatasetName(localPath)
	if index < len(cfg.DatasetNames) && cfg.DatasetNames[index] != "" {
		name = cfg.DatasetNames[index]
	}

	tracker.Update(input, "loading", 0, "")
	result, err := importer.Load(localPath, importer.Options{
		Delimiter: cfg.Delimiter,
		HasHeader: cfg.HasHeader,
	}, func(filePath string, rowsRead int64) {
		tracker.Update(input, "loading", rowsRead, "rows")
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", input, err)
	}

	fixed, err := dataset.FixColumns(result.Dataset)
	if err != nil {
		return fmt.Errorf("failed to fix columns of %s: %w", input, err)
	}
	renamed := countRenamed(result.Dataset, fixed)

	targetDir := filepath.Join(cfg.OutputDir, name+".parquet")
	writeResult, err := exporter.Write(fixed, targetDir, exporter.Options{
		Partitions: cfg.Partitions,
		Overwrite:  cfg.Overwrite,
	}, func(dir string, rowsWritten int64) {
		tracker.Update(input, "writing", rowsWritten, "rows")
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", targetDir, err)
	}

	tracker.Complete(input, fmt.Sprintf("%d rows → %s", writeResult.RowCount, targetDir))
	infoColor.Printf("Ingested %s → %s (%d rows, %d columns, %d renamed)\n",
		input, targetDir, writeResult.RowCount, fixed.NumColumns(), renamed)
	successColor.Printf("✓ %s written as %d partition(s)\n", name, len(writeResult.PartFiles))

	if store != nil {
		err := store.Record(manifest.Run{
			Dataset:        name,
			Source:         input,
			OutputPath:     targetDir,
			Rows:           writeResult.RowCount,
			Columns:        fixed.NumColumns(),
			RenamedColumns: renamed,
			Duration:       time.Since(started),
			FinishedAt:     time.Now(),
		})
		if err != nil {
			warnColor.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return nil
}

func countRenamed(before, after dataset.Dataset) int {
	renamed := 0
	for i := range before.Columns {
		if before.Columns[i].Name != after.Columns[i].Name {
			renamed++
		}
	}
	return renamed
}
