// Package config provides configuration types and parsing for csvpq.
package config

import (
	"fmt"
	"strings"
)

// Config holds all configuration options for an ingestion run.
type Config struct {
	Inputs       []string // local paths or http(s) URLs
	DatasetNames []string // positional overrides for derived dataset names
	OutputDir    string
	ManifestPath string // empty disables the manifest
	Delimiter    rune   // 0 means auto-detect per file
	Partitions   int
	HasHeader    bool
	Overwrite    bool
}

// ParseDelimiter converts a delimiter string to a rune.
// Valid values: "comma", "csv", "tab", "tsv", "auto".
// Returns 0 for auto-detection.
func ParseDelimiter(delimiterStr string) (rune, error) {
	switch strings.ToLower(delimiterStr) {
	case "comma", "csv":
		return ',', nil
	case "tab", "tsv":
		return '\t', nil
	case "auto":
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid delimiter: %s (use 'comma', 'tab', or 'auto')", delimiterStr)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("must specify at least one input file or URL")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("must specify an output directory")
	}
	if len(c.DatasetNames) > len(c.Inputs) {
		return fmt.Errorf("more dataset names (%d) than inputs (%d)", len(c.DatasetNames), len(c.Inputs))
	}
	if c.Partitions < 1 {
		return fmt.Errorf("partitions must be at least 1, got %d", c.Partitions)
	}
	return nil
}
