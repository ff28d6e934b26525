package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config holds the settings for the sqlgen CLI.
type Config struct {
	// Database is the path to the SQLite database queries run
	// against. Defaults to "metrics.db".
	Database string `hcl:"database,optional"`

	// Table is the table queries are built for. Defaults to
	// "metrics".
	Table string `hcl:"table,optional"`

	// RowLimit caps the number of rows a query returns. Zero or
	// negative leaves queries unlimited.
	RowLimit int `hcl:"row_limit,optional"`

	// Verbose enables debug logging.
	Verbose bool `hcl:"verbose,optional"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: "metrics.db",
		Table:    "metrics",
	}
}

// Load reads configuration from an HCL file. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply defaults for fields left empty in the file.
	if cfg.Database == "" {
		cfg.Database = "metrics.db"
	}
	if cfg.Table == "" {
		cfg.Table = "metrics"
	}

	return cfg, nil
}
