package indicators

import (
	"math"

	"github.com/rustyeddy/natgasvol/market"
)

// LogReturns computes ln(p[i]/p[i-1]) for every price. The result has the
// same length and dates as prices. Element 0 is undefined, as is any element
// whose own or preceding price is undefined or not positive. A bad price
// therefore taints exactly two returns.
func LogReturns(prices *market.PriceSeries) *market.ReturnSeries {
	n := prices.Len()
	obs := make([]market.Observation, n)
	for i := 0; i < n; i++ {
		p := prices.At(i)
		obs[i] = market.Observation{Date: p.Date, Label: p.Label}
		if i == 0 {
			continue
		}
		obs[i].Value = logReturn(prices.At(i-1).Price, p.Price)
	}
	return market.NewReturnSeries(obs)
}

func logReturn(prev, cur market.Value) market.Value {
	a, okA := prev.Get()
	b, okB := cur.Get()
	if !okA || !okB || a <= 0 || b <= 0 {
		return market.None()
	}
	return market.Some(math.Log(b / a))
}
