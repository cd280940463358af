package journal

import (
	"encoding/csv"
	"io"
	"os"
)

var seriesHeader = []string{"date", "price", "ln_return", "rolling_volatility"}

// WriteSeriesCSV writes one line per row. Undefined values are empty cells.
// The annualized_volatility column is added when withAnnualized is set.
func WriteSeriesCSV(w io.Writer, rows []SeriesRow, withAnnualized bool) error {
	cw := csv.NewWriter(w)

	header := seriesHeader
	if withAnnualized {
		header = append(append([]string(nil), seriesHeader...), "annualized_volatility")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.Label,
			r.Price.String(),
			r.Return.String(),
			r.Volatility.String(),
		}
		if withAnnualized {
			rec = append(rec, r.Annualized.String())
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSVFile creates path and writes the rows to it.
func WriteSeriesCSVFile(path string, rows []SeriesRow, withAnnualized bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSeriesCSV(f, rows, withAnnualized); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
