package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/natgasvol/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 156, cfg.Analysis.Window)
	assert.Equal(t, "%m/%d/%Y", cfg.Dates.SourceFormat)
	assert.Equal(t, "%d/%m/%Y", cfg.Dates.TargetFormat)
	assert.Equal(t, "detect", cfg.Input.Order)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing date column",
			mutate:  func(c *Config) { c.Input.DateColumn = "" },
			wantErr: true,
			errMsg:  "input.date_column is required",
		},
		{
			name:    "missing price column",
			mutate:  func(c *Config) { c.Input.PriceColumn = "" },
			wantErr: true,
			errMsg:  "input.price_column is required",
		},
		{
			name:    "negative skip rows",
			mutate:  func(c *Config) { c.Input.SkipRows = -1 },
			wantErr: true,
			errMsg:  "input.skip_rows",
		},
		{
			name:    "unknown order",
			mutate:  func(c *Config) { c.Input.Order = "random" },
			wantErr: true,
			errMsg:  "input.order",
		},
		{
			name:    "empty source format",
			mutate:  func(c *Config) { c.Dates.SourceFormat = "" },
			wantErr: true,
			errMsg:  "dates.source_format",
		},
		{
			name:    "window of one",
			mutate:  func(c *Config) { c.Analysis.Window = 1 },
			wantErr: true,
			errMsg:  "analysis.window",
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Analysis.Strategy = "garch" },
			wantErr: true,
			errMsg:  "analysis.strategy",
		},
		{
			name:    "bad cron",
			mutate:  func(c *Config) { c.Schedule.Cron = "every tuesday" },
			wantErr: true,
			errMsg:  "schedule.cron",
		},
		{
			name:   "no schedule",
			mutate: func(c *Config) { c.Schedule.Cron = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWindowError(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Window = 0

	var iw *market.InvalidWindowError
	assert.ErrorAs(t, cfg.Validate(), &iw)
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Analysis.Window = 52
			cfg.Input.Order = "newest-first"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  window: 26\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 26, cfg.Analysis.Window)
	assert.Equal(t, Default().Input.DateColumn, cfg.Input.DateColumn)
}

func TestLoadRejectsInvalidWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  window: 1\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestNormalizeOptions(t *testing.T) {
	cfg := Default()
	cfg.Input.Order = "oldest-first"

	opts, err := cfg.NormalizeOptions()
	require.NoError(t, err)
	assert.Equal(t, market.OrderOldestFirst, opts.Order)
	assert.Equal(t, cfg.Dates.SourceFormat, opts.SourceFormat)

	lo := cfg.LoadOptions()
	assert.Equal(t, cfg.Input.PriceColumn, lo.PriceColumn)
}
