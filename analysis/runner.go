// Package analysis runs the weekly price volatility pipeline end to end.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/natgasvol/config"
	"github.com/rustyeddy/natgasvol/indicators"
	"github.com/rustyeddy/natgasvol/journal"
	"github.com/rustyeddy/natgasvol/market"
	"github.com/rustyeddy/natgasvol/market/data"
	"github.com/rustyeddy/natgasvol/pkg/id"
)

// Source yields the raw records of one batch.
type Source interface {
	Load() ([]market.RawRecord, error)
}

// CSVSource loads a price table from disk.
type CSVSource struct {
	Path    string
	Options data.Options
}

func (s CSVSource) Load() ([]market.RawRecord, error) {
	return data.LoadCSV(s.Path, s.Options)
}

// RecordSource serves records already in memory.
type RecordSource []market.RawRecord

func (s RecordSource) Load() ([]market.RawRecord, error) {
	return s, nil
}

// Options controls one pipeline run.
type Options struct {
	Dataset    string
	PriceLabel string

	Normalize market.NormalizeOptions
	Window    int
	Strategy  indicators.Strategy

	// PeriodsPerYear > 0 adds an annualized volatility series.
	PeriodsPerYear float64
}

// OptionsFromConfig converts a validated config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	norm, err := cfg.NormalizeOptions()
	if err != nil {
		return Options{}, err
	}
	strategy, err := indicators.ParseStrategy(cfg.Analysis.Strategy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Dataset:        cfg.Input.Name,
		PriceLabel:     cfg.Input.PriceColumn,
		Normalize:      norm,
		Window:         cfg.Analysis.Window,
		Strategy:       strategy,
		PeriodsPerYear: cfg.Analysis.PeriodsPerYear,
	}, nil
}

// VolatilityLabel is the column label of the rolling volatility series.
const VolatilityLabel = "Rolling Volatility"

// Result is the read-only output of a run.
type Result struct {
	RunID   string
	Created time.Time
	Options Options

	Records    int
	Prices     *market.PriceSeries
	Returns    *market.ReturnSeries
	Volatility *market.VolatilitySeries
	Annualized *market.VolatilitySeries // nil unless PeriodsPerYear > 0
}

// PriceObservations returns (date, price) pairs for a price-over-time view.
func (r *Result) PriceObservations() []market.Observation {
	return r.Prices.Observations()
}

// VolatilityObservations returns (date, volatility) pairs for a
// volatility-over-time view.
func (r *Result) VolatilityObservations() []market.Observation {
	return r.Volatility.Observations()
}

func (r *Result) PriceLabel() string {
	return r.Options.PriceLabel
}

func (r *Result) VolatilityLabel() string {
	return VolatilityLabel
}

// Window is the rolling window length, for chart title annotation.
func (r *Result) Window() int {
	return r.Volatility.Window()
}

// VolatilityTitle is the chart title for the volatility view.
func (r *Result) VolatilityTitle() string {
	name := r.Options.Dataset
	if name == "" {
		name = "Price"
	}
	return fmt.Sprintf("%s Volatility Over Time (Window: %d weeks)", name, r.Window())
}

// Runner drives one source through the pipeline.
type Runner struct {
	Source  Source
	Options Options
}

// Run executes the pipeline:
//  1. load raw records
//  2. normalize dates and order
//  3. log returns
//  4. rolling volatility (and annualized volatility if requested)
//
// Every run builds new series; nothing is shared between runs.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Source == nil {
		return nil, fmt.Errorf("analysis: Source is required")
	}
	if err := indicators.ValidateWindow(r.Options.Window); err != nil {
		return nil, err
	}

	recs, err := r.Source.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prices, err := market.Normalize(recs, r.Options.Normalize)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	returns := indicators.LogReturns(prices)
	vol, err := indicators.RollingVolatility(returns, r.Options.Window, indicators.WithStrategy(r.Options.Strategy))
	if err != nil {
		return nil, fmt.Errorf("volatility: %w", err)
	}

	res := &Result{
		RunID:      id.NewRun(),
		Created:    time.Now().UTC(),
		Options:    r.Options,
		Records:    len(recs),
		Prices:     prices,
		Returns:    returns,
		Volatility: vol,
	}
	if r.Options.PeriodsPerYear > 0 {
		res.Annualized = indicators.Annualize(vol, r.Options.PeriodsPerYear)
	}
	return res, nil
}

// Report builds the run summary. Undefined values are excluded from every
// statistic.
func (r *Result) Report(source, seriesCSV string) journal.Report {
	rep := journal.Report{
		RunID:          r.RunID,
		Created:        r.Created,
		Dataset:        r.Options.Dataset,
		Source:         source,
		Rows:           r.Prices.Len(),
		Window:         r.Window(),
		Strategy:       r.Options.Strategy.String(),
		PeriodsPerYear: r.Options.PeriodsPerYear,
		Price:          market.Summarize(r.Prices.Prices()),
		Returns:        market.Summarize(r.Returns.Values()),
		Volatility:     market.Summarize(r.Volatility.Values()),
		SeriesCSV:      seriesCSV,
	}
	if n := r.Prices.Len(); n > 0 {
		rep.StartLabel = r.Prices.At(0).Label
		rep.EndLabel = r.Prices.At(n - 1).Label
	}
	if r.Annualized != nil {
		s := market.Summarize(r.Annualized.Values())
		rep.Annualized = &s
	}
	if rep.Volatility.Count == 0 {
		rep.Notes = append(rep.Notes, fmt.Sprintf("no complete %d-week window: series has %d returns", r.Window(), rep.Returns.Count))
	}
	if rep.Price.Undefined > 0 {
		rep.Notes = append(rep.Notes, fmt.Sprintf("%d weeks without a price", rep.Price.Undefined))
	}
	return rep
}

// Rows zips the result into journal rows.
func (r *Result) Rows() ([]journal.SeriesRow, error) {
	return journal.Rows(r.Prices, r.Returns, r.Volatility, r.Annualized)
}

// WriteOutputs writes the series CSV and Org report. Empty paths are
// skipped.
func (r *Result) WriteOutputs(source string, out config.OutputConfig) error {
	if out.SeriesCSV != "" {
		rows, err := r.Rows()
		if err != nil {
			return err
		}
		if err := journal.WriteSeriesCSVFile(out.SeriesCSV, rows, r.Annualized != nil); err != nil {
			return fmt.Errorf("write series csv: %w", err)
		}
	}
	if out.ReportOrg != "" {
		rep := r.Report(source, out.SeriesCSV)
		if err := rep.WriteOrgFile(out.ReportOrg); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
