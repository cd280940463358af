package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/natgasvol/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sample = `Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu
01/20/2024,2.10
01/13/2024,
01/06/2024,2.00
`

func TestReadCSV(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(sample), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, 0, recs[0].Index)
	assert.Equal(t, "01/20/2024", recs[0].Date)
	assert.Equal(t, 2.10, recs[0].Price.Or(0))

	// empty cell is a missing observation, not an error
	assert.False(t, recs[1].Price.Valid())
	assert.Equal(t, 2, recs[2].Index)
}

func TestReadCSVHeaderVariants(t *testing.T) {
	in := "\ufeffprice , WEEK OF\n 3.5 ,01/06/2024\n\n4,01/13/2024\n"
	recs, err := ReadCSV(strings.NewReader(in), Options{DateColumn: "week of", PriceColumn: "Price"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 3.5, recs[0].Price.Or(0))
	assert.Equal(t, "01/13/2024", recs[1].Date)
	assert.Equal(t, 1, recs[1].Index)
}

func TestReadCSVZeroPrice(t *testing.T) {
	in := "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,0.00\n01/13/2024,0e5\n"
	recs, err := ReadCSV(strings.NewReader(in), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		x, ok := r.Price.Get()
		assert.True(t, ok)
		assert.Zero(t, x)
	}
}

func TestReadCSVSkipRows(t *testing.T) {
	in := "Henry Hub Natural Gas Spot Price\nSource: U.S. Energy Information Administration\n" + sample
	recs, err := ReadCSV(strings.NewReader(in), Options{SkipRows: 2})
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		check func(t *testing.T, err error)
	}{
		{
			name: "empty input",
			in:   "",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "no header")
			},
		},
		{
			name: "missing price column",
			in:   "Week of,Price\n01/06/2024,2\n",
			check: func(t *testing.T, err error) {
				var mf *market.MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, -1, mf.Index)
				assert.Equal(t, DefaultPriceColumn, mf.Field)
			},
		},
		{
			name: "short row",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,2\n01/13/2024\n",
			check: func(t *testing.T, err error) {
				var mf *market.MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, 1, mf.Index)
				assert.Contains(t, err.Error(), "record 1")
			},
		},
		{
			name: "empty date",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n,2\n",
			check: func(t *testing.T, err error) {
				var mf *market.MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, DefaultDateColumn, mf.Field)
			},
		},
		{
			name: "non-numeric price",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,2\n01/13/2024,n/a\n",
			check: func(t *testing.T, err error) {
				var mp *market.MalformedPriceError
				require.ErrorAs(t, err, &mp)
				assert.Equal(t, 1, mp.Index)
				assert.Equal(t, "n/a", mp.Raw)
			},
		},
		{
			name: "negative price",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,-1.5\n",
			check: func(t *testing.T, err error) {
				var mp *market.MalformedPriceError
				require.ErrorAs(t, err, &mp)
				assert.Equal(t, 0, mp.Index)
			},
		},
		{
			name: "price overflows float64",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,1e400\n",
			check: func(t *testing.T, err error) {
				var mp *market.MalformedPriceError
				require.ErrorAs(t, err, &mp)
				assert.Equal(t, 0, mp.Index)
				assert.Equal(t, "1e400", mp.Raw)
				assert.Contains(t, err.Error(), "out of range")
			},
		},
		{
			name: "price underflows to zero",
			in:   "Week of,Henry Hub Natural Gas Spot Price Dollars per Million Btu\n01/06/2024,2\n01/13/2024,1e-400\n",
			check: func(t *testing.T, err error) {
				var mp *market.MalformedPriceError
				require.ErrorAs(t, err, &mp)
				assert.Equal(t, 1, mp.Index)
				assert.Contains(t, err.Error(), "too small")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), DefaultOptions())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "hh.csv")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0644))

	compressed := filepath.Join(dir, "hh.csv.xz")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{plain, compressed} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			recs, err := LoadCSV(path, DefaultOptions())
			require.NoError(t, err)
			assert.Len(t, recs, 3)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV("/nonexistent/hh.csv", DefaultOptions())
	assert.Error(t, err)
}
