package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rustyeddy/natgasvol/indicators"
	"github.com/rustyeddy/natgasvol/market"
	"github.com/rustyeddy/natgasvol/market/data"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analysis configuration
type Config struct {
	Input    InputConfig    `json:"input" yaml:"input"`
	Dates    DatesConfig    `json:"dates" yaml:"dates"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
}

// InputConfig describes the price table
type InputConfig struct {
	Path        string `json:"path" yaml:"path"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"` // dataset label used in reports
	DateColumn  string `json:"date_column" yaml:"date_column"`
	PriceColumn string `json:"price_column" yaml:"price_column"`
	SkipRows    int    `json:"skip_rows,omitempty" yaml:"skip_rows,omitempty"`
	Order       string `json:"order" yaml:"order"` // "detect", "newest-first" or "oldest-first"
}

// DatesConfig holds strftime patterns for parsing and display
type DatesConfig struct {
	SourceFormat string `json:"source_format" yaml:"source_format"`
	TargetFormat string `json:"target_format" yaml:"target_format"`
}

// AnalysisConfig contains the rolling window parameters
type AnalysisConfig struct {
	Window         int     `json:"window" yaml:"window"`
	Strategy       string  `json:"strategy" yaml:"strategy"` // "recompute", "incremental" or "reference"
	PeriodsPerYear float64 `json:"periods_per_year" yaml:"periods_per_year"`
}

// OutputConfig names the report files. Empty paths are skipped.
type OutputConfig struct {
	SeriesCSV string `json:"series_csv,omitempty" yaml:"series_csv,omitempty"`
	ReportOrg string `json:"report_org,omitempty" yaml:"report_org,omitempty"`
}

// ScheduleConfig is used by the watch command
type ScheduleConfig struct {
	Cron string `json:"cron,omitempty" yaml:"cron,omitempty"` // six fields, seconds first
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(raw, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(raw, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML or JSON based on extension)
func (c *Config) SaveToFile(path string) error {
	var out []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		out, err = yaml.Marshal(c)
	} else {
		out, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.DateColumn == "" {
		return fmt.Errorf("input.date_column is required")
	}
	if c.Input.PriceColumn == "" {
		return fmt.Errorf("input.price_column is required")
	}
	if c.Input.SkipRows < 0 {
		return fmt.Errorf("input.skip_rows must not be negative")
	}
	if _, err := market.ParseOrder(c.Input.Order); err != nil {
		return fmt.Errorf("input.order: %w", err)
	}
	if err := market.ValidateDateFormat(c.Dates.SourceFormat); err != nil {
		return fmt.Errorf("dates.source_format: %w", err)
	}
	if err := market.ValidateDateFormat(c.Dates.TargetFormat); err != nil {
		return fmt.Errorf("dates.target_format: %w", err)
	}
	if err := indicators.ValidateWindow(c.Analysis.Window); err != nil {
		return fmt.Errorf("analysis.window: %w", err)
	}
	if _, err := indicators.ParseStrategy(c.Analysis.Strategy); err != nil {
		return fmt.Errorf("analysis.strategy: %w", err)
	}
	if c.Analysis.PeriodsPerYear < 0 {
		return fmt.Errorf("analysis.periods_per_year must not be negative")
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.NewParser(CronFields).Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	return nil
}

// CronFields is the cron syntax accepted by schedule.cron.
const CronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow

// NormalizeOptions converts the input and date settings for market.Normalize.
func (c *Config) NormalizeOptions() (market.NormalizeOptions, error) {
	order, err := market.ParseOrder(c.Input.Order)
	if err != nil {
		return market.NormalizeOptions{}, err
	}
	return market.NormalizeOptions{
		SourceFormat: c.Dates.SourceFormat,
		TargetFormat: c.Dates.TargetFormat,
		Order:        order,
	}, nil
}

// LoadOptions converts the input settings for data.LoadCSV.
func (c *Config) LoadOptions() data.Options {
	return data.Options{
		DateColumn:  c.Input.DateColumn,
		PriceColumn: c.Input.PriceColumn,
		SkipRows:    c.Input.SkipRows,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:        "./Henry_Hub_Natural_Gas_Spot_Price.csv",
			Name:        "Henry Hub Natural Gas Spot Price",
			DateColumn:  data.DefaultDateColumn,
			PriceColumn: data.DefaultPriceColumn,
			Order:       market.OrderDetect.String(),
		},
		Dates: DatesConfig{
			SourceFormat: market.DefaultSourceFormat,
			TargetFormat: market.DefaultTargetFormat,
		},
		Analysis: AnalysisConfig{
			Window:         indicators.DefaultWindow,
			Strategy:       indicators.Recompute.String(),
			PeriodsPerYear: 52,
		},
		Output: OutputConfig{
			SeriesCSV: "./volatility.csv",
			ReportOrg: "./volatility.org",
		},
		Schedule: ScheduleConfig{
			Cron: "0 0 18 * * 3",
		},
	}
}
