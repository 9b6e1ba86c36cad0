package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Quantity", cfg.Export.QuantityColumn)
	assert.Equal(t, "Pick Location", cfg.Export.LocationColumn)
	assert.Equal(t, "picklist.csv", cfg.Export.Output)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Delimiter)
	assert.Contains(t, cfg.ProductCandidates, "artikel")
	assert.Contains(t, cfg.LocationCandidates, "lagerort")

	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Export, cfg.Export)
}

func TestLoadFile(t *testing.T) {
	content := `
catalog: /data/inventory.csv
delimiter: ";"
product_candidates: [sku, part]
search:
  product_only: true
export:
  quantity_column: Menge
`
	path := filepath.Join(t.TempDir(), "stockpick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/inventory.csv", cfg.Catalog)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, []string{"sku", "part"}, cfg.ProductCandidates)
	assert.True(t, cfg.Search.ProductOnly)
	assert.Equal(t, "Menge", cfg.Export.QuantityColumn)

	// Keys the file does not set keep their defaults.
	assert.Equal(t, "Pick Location", cfg.Export.LocationColumn)
	assert.Equal(t, "picklist.csv", cfg.Export.Output)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockpick.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("override defaults", func(t *testing.T) {
		t.Setenv("STOCKPICK_CATALOG", "/env/catalog.csv")
		t.Setenv("STOCKPICK_DELIMITER", "|")
		t.Setenv("STOCKPICK_LOG_LEVEL", "debug")
		t.Setenv("STOCKPICK_LOG_FILE", "/tmp/stockpick.log")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "/env/catalog.csv", cfg.Catalog)
		assert.Equal(t, "|", cfg.Delimiter)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/stockpick.log", cfg.Logging.File)
	})

	t.Run("override file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stockpick.yaml")
		require.NoError(t, os.WriteFile(path, []byte("catalog: /file/catalog.csv\n"), 0o644))
		t.Setenv("STOCKPICK_CATALOG", "/env/catalog.csv")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/env/catalog.csv", cfg.Catalog)
	})

	t.Run("empty env leaves config alone", func(t *testing.T) {
		t.Setenv("STOCKPICK_CATALOG", "")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Catalog)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "single-character delimiter ok",
			mutate:  func(c *Config) { c.Delimiter = ";" },
			wantErr: false,
		},
		{
			name:    "multi-character delimiter rejected",
			mutate:  func(c *Config) { c.Delimiter = ";;" },
			wantErr: true,
		},
		{
			name:    "empty quantity column rejected",
			mutate:  func(c *Config) { c.Export.QuantityColumn = "" },
			wantErr: true,
		},
		{
			name:    "empty location column rejected",
			mutate:  func(c *Config) { c.Export.LocationColumn = "" },
			wantErr: true,
		},
		{
			name: "identical export columns rejected",
			mutate: func(c *Config) {
				c.Export.QuantityColumn = "Amount"
				c.Export.LocationColumn = "Amount"
			},
			wantErr: true,
		},
		{
			name:    "unknown log level rejected",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "warn level accepted",
			mutate:  func(c *Config) { c.Logging.Level = "warn" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, rune(0), cfg.DelimiterRune())

	cfg.Delimiter = ";"
	assert.Equal(t, ';', cfg.DelimiterRune())

	cfg.Delimiter = "\t"
	assert.Equal(t, '\t', cfg.DelimiterRune())
}
