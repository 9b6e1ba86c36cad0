// Package config holds the stockpick configuration: a YAML file overlaid
// with STOCKPICK_* environment variables, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"stockpick/internal/catalog"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "stockpick.yaml"

type Config struct {
	// Catalog is the default catalog file, so `stockpick tui` works without
	// flags on a machine that always browses the same export.
	Catalog string `yaml:"catalog"`

	// Delimiter forces the catalog separator. Empty means auto-detect.
	Delimiter string `yaml:"delimiter"`

	ProductCandidates  []string `yaml:"product_candidates"`
	LocationCandidates []string `yaml:"location_candidates"`

	Search  SearchConfig  `yaml:"search"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

type SearchConfig struct {
	// ProductOnly restricts searching to the product column instead of all
	// columns.
	ProductOnly bool `yaml:"product_only"`
}

type ExportConfig struct {
	// Column names the export adds to the catalog's own columns. They must
	// differ from each other; colliding catalog columns are overwritten.
	QuantityColumn string `yaml:"quantity_column"`
	LocationColumn string `yaml:"location_column"`

	// Output is the default export file name.
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives the log output. Required for any logging while the TUI
	// owns the terminal.
	File string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		ProductCandidates:  append([]string(nil), catalog.DefaultProductCandidates...),
		LocationCandidates: append([]string(nil), catalog.DefaultLocationCandidates...),
		Export: ExportConfig{
			QuantityColumn: "Quantity",
			LocationColumn: "Pick Location",
			Output:         "picklist.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are used. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("STOCKPICK_CATALOG"); path != "" {
		c.Catalog = path
	}
	if delim := os.Getenv("STOCKPICK_DELIMITER"); delim != "" {
		c.Delimiter = delim
	}
	if level := os.Getenv("STOCKPICK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("STOCKPICK_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

// Validate checks the settings that would otherwise fail deep inside a
// session. Problems are collected so the user sees all of them at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("delimiter must be a single character, got %q", c.Delimiter))
	}
	if c.Export.QuantityColumn == "" {
		errs = append(errs, "export.quantity_column must not be empty")
	}
	if c.Export.LocationColumn == "" {
		errs = append(errs, "export.location_column must not be empty")
	}
	if c.Export.QuantityColumn != "" && c.Export.QuantityColumn == c.Export.LocationColumn {
		errs = append(errs, "export.quantity_column and export.location_column must differ")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown logging level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DelimiterRune returns the forced catalog delimiter, or 0 when detection
// should run.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
