// Package journal writes the derived series and run reports that renderers
// and notebooks consume.
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/natgasvol/market"
)

// SeriesRow is one week of the aligned price, return and volatility series.
type SeriesRow struct {
	Date       time.Time
	Label      string
	Price      market.Value
	Return     market.Value
	Volatility market.Value
	Annualized market.Value
}

// Rows zips the series into rows. All series must be aligned to prices;
// annualized may be nil.
func Rows(prices *market.PriceSeries, returns *market.ReturnSeries, vol, annualized *market.VolatilitySeries) ([]SeriesRow, error) {
	n := prices.Len()
	if returns.Len() != n || vol.Len() != n {
		return nil, fmt.Errorf("series not aligned: %d prices, %d returns, %d volatilities", n, returns.Len(), vol.Len())
	}
	if annualized != nil && annualized.Len() != n {
		return nil, fmt.Errorf("series not aligned: %d prices, %d annualized volatilities", n, annualized.Len())
	}

	rows := make([]SeriesRow, n)
	for i := 0; i < n; i++ {
		p := prices.At(i)
		rows[i] = SeriesRow{
			Date:       p.Date,
			Label:      p.Label,
			Price:      p.Price,
			Return:     returns.At(i).Value,
			Volatility: vol.At(i).Value,
		}
		if annualized != nil {
			rows[i].Annualized = annualized.At(i).Value
		}
	}
	return rows, nil
}
