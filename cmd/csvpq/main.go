// csvpq - CSV to Parquet dataset ingestion
//
// A Go CLI tool that downloads or reads CSV/TSV datasets, cleans column
// names that Parquet rejects, and writes each dataset as snappy-compressed
// single-partition Parquet.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/csvpq/csvpq-go/internal/cli"
)

// Version information (set via ldflags at build time)
// These variables are intentionally unused in code but set via ldflags
var (
	version   = "dev"     //nolint:unused // Set via ldflags
	buildTime = "unknown" //nolint:unused // Set via ldflags
)

func main() {
	if err := cli.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
