// Package data loads weekly price tables into raw records.
package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/natgasvol/market"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
)

// Column names of the EIA weekly Henry Hub spot price download.
const (
	DefaultDateColumn  = "Week of"
	DefaultPriceColumn = "Henry Hub Natural Gas Spot Price Dollars per Million Btu"
)

// Options names the columns to read. SkipRows drops preamble lines that
// precede the header.
type Options struct {
	DateColumn  string
	PriceColumn string
	SkipRows    int
}

func DefaultOptions() Options {
	return Options{
		DateColumn:  DefaultDateColumn,
		PriceColumn: DefaultPriceColumn,
	}
}

// LoadCSV reads a comma separated file. Paths ending in .xz are
// decompressed on the fly.
func LoadCSV(path string, opts Options) ([]market.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		r = xr
	}

	recs, err := ReadCSV(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadCSV reads a header row followed by data rows. Every data row must
// carry both columns; an empty price cell is a missing observation and
// becomes an undefined price. Record indexes count data rows from 0 in
// file order.
func ReadCSV(r io.Reader, opts Options) ([]market.RawRecord, error) {
	if opts.DateColumn == "" {
		opts.DateColumn = DefaultDateColumn
	}
	if opts.PriceColumn == "" {
		opts.PriceColumn = DefaultPriceColumn
	}

	br := bufio.NewReader(r)
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("skip row %d: %w", i, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx := columnIndex(header, opts.DateColumn)
	if dateIdx < 0 {
		return nil, &market.MissingFieldError{Index: -1, Field: opts.DateColumn}
	}
	priceIdx := columnIndex(header, opts.PriceColumn)
	if priceIdx < 0 {
		return nil, &market.MissingFieldError{Index: -1, Field: opts.PriceColumn}
	}

	var out []market.RawRecord
	for idx := 0; ; {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", idx, err)
		}
		if blank(row) {
			continue
		}

		if dateIdx >= len(row) || strings.TrimSpace(row[dateIdx]) == "" {
			return nil, &market.MissingFieldError{Index: idx, Field: opts.DateColumn}
		}
		if priceIdx >= len(row) {
			return nil, &market.MissingFieldError{Index: idx, Field: opts.PriceColumn}
		}

		price, err := parsePrice(row[priceIdx])
		if err != nil {
			return nil, &market.MalformedPriceError{Index: idx, Field: opts.PriceColumn, Raw: row[priceIdx], Err: err}
		}

		out = append(out, market.RawRecord{
			Index: idx,
			Date:  strings.TrimSpace(row[dateIdx]),
			Price: price,
		})
		idx++
	}
	return out, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.EqualFold(h, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parsePrice accepts plain decimal text. Empty text is an undefined price;
// text that does not fit a float64 is an error.
func parsePrice(s string) (market.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return market.None(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return market.None(), err
	}
	if d.IsNegative() {
		return market.None(), fmt.Errorf("negative price")
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return market.None(), fmt.Errorf("price out of range")
	}
	if f == 0 && !d.IsZero() {
		return market.None(), fmt.Errorf("price too small to represent")
	}
	return market.Some(f), nil
}
