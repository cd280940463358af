package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/natgasvol/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries(t *testing.T) (*market.PriceSeries, *market.ReturnSeries, *market.VolatilitySeries) {
	t.Helper()

	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	var pts []market.PricePoint
	var obs []market.Observation
	for i, p := range []float64{2.00, 2.10, 2.00} {
		day := d.AddDate(0, 0, 7*i)
		label := day.Format("02/01/2006")
		pts = append(pts, market.PricePoint{Date: day, Label: label, Price: market.Some(p)})
		obs = append(obs, market.Observation{Date: day, Label: label})
	}
	prices, err := market.NewPriceSeries(pts)
	require.NoError(t, err)

	obs[1].Value = market.Some(0.048790)
	obs[2].Value = market.Some(-0.048790)
	returns := market.NewReturnSeries(obs)

	vol := make([]market.Observation, len(obs))
	copy(vol, obs)
	vol[1].Value = market.None()
	vol[2].Value = market.Some(0.069000)

	return prices, returns, market.NewVolatilitySeries(vol, 2)
}

func TestRows(t *testing.T) {
	t.Parallel()

	prices, returns, vol := testSeries(t)

	rows, err := Rows(prices, returns, vol, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "19/01/2024", rows[2].Label)
	assert.False(t, rows[0].Return.Valid())
	assert.False(t, rows[2].Annualized.Valid())

	short := market.NewReturnSeries(returns.Observations()[:2])
	_, err = Rows(prices, short, vol, nil)
	assert.Error(t, err)
}

func TestWriteSeriesCSV(t *testing.T) {
	t.Parallel()

	prices, returns, vol := testSeries(t)
	rows, err := Rows(prices, returns, vol, vol)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSeriesCSV(&buf, rows, false))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.Equal(t, []string{"date", "price", "ln_return", "rolling_volatility"}, recs[0])
	assert.Equal(t, []string{"05/01/2024", "2.000000", "", ""}, recs[1])
	assert.Equal(t, []string{"19/01/2024", "2.000000", "-0.048790", "0.069000"}, recs[3])

	buf.Reset()
	require.NoError(t, WriteSeriesCSV(&buf, rows, true))
	header, err := csv.NewReader(strings.NewReader(buf.String())).Read()
	require.NoError(t, err)
	assert.Equal(t, "annualized_volatility", header[4])
}

func TestWriteSeriesCSVFile(t *testing.T) {
	t.Parallel()

	prices, returns, vol := testSeries(t)
	rows, err := Rows(prices, returns, vol, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, WriteSeriesCSVFile(path, rows, false))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(raw), "\n"))

	assert.Error(t, WriteSeriesCSVFile(filepath.Join(t.TempDir(), "missing", "series.csv"), rows, false))
}

func TestReportWriteOrg(t *testing.T) {
	t.Parallel()

	prices, returns, vol := testSeries(t)
	rep := Report{
		RunID:      "01HQ0000000000000000000000",
		Created:    time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC),
		Dataset:    "Henry Hub Natural Gas Spot Price",
		Source:     "hh.csv",
		Rows:       prices.Len(),
		StartLabel: prices.At(0).Label,
		EndLabel:   prices.At(2).Label,
		Window:     vol.Window(),
		Strategy:   "recompute",
		Price:      market.Summarize(prices.Prices()),
		Returns:    market.Summarize(returns.Values()),
		Volatility: market.Summarize(vol.Values()),
		SeriesCSV:  "series.csv",
		Notes:      []string{"first note"},
	}

	var buf bytes.Buffer
	require.NoError(t, rep.WriteOrg(&buf))
	out := buf.String()

	assert.Contains(t, out, "* VOLATILITY: Henry Hub Natural Gas Spot Price (Window: 2 weeks)")
	assert.Contains(t, out, ":RUN_ID:      01HQ0000000000000000000000")
	assert.Contains(t, out, ":START_DATE:  05/01/2024")
	assert.Contains(t, out, ":END_DATE:    19/01/2024")
	assert.Contains(t, out, ":CREATED:     [2024-03-06 Wed 18:00]")
	assert.Contains(t, out, "| Rolling volatility | 1 | 2 | 0.0690 |")
	assert.Contains(t, out, "| Log return         | 2 | 1 |")
	assert.Contains(t, out, "[[file:series.csv]]")
	assert.Contains(t, out, "- first note")
	assert.NotContains(t, out, "Annualized")
}

func TestReportWriteOrgPlaceholders(t *testing.T) {
	t.Parallel()

	ann := market.Summarize([]market.Value{market.Some(0.5)})
	rep := Report{Window: 156, PeriodsPerYear: 52, Annualized: &ann}

	path := filepath.Join(t.TempDir(), "report.org")
	require.NoError(t, rep.WriteOrgFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, "(dataset?)")
	assert.Contains(t, out, "(run-id?)")
	assert.Contains(t, out, "| Annualized (52/yr) | 1 | 0 | 0.5000 |")
	assert.Contains(t, out, "| Price              | 0 | 0 | 0.0000 | 0.0000 | 0.0000 | n/a |")
	assert.NotContains(t, out, "** Observations")
}
