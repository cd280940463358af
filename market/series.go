package market

import (
	"fmt"
	"time"
)

// PricePoint is one weekly observation. Date is a calendar date at UTC
// midnight; Label is the date rendered in the display format.
type PricePoint struct {
	Date  time.Time
	Label string
	Price Value
}

func (p PricePoint) dateText() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Date.Format(time.DateOnly)
}

// Observation is a (date, value) pair handed to renderers.
type Observation struct {
	Date  time.Time
	Label string
	Value Value
}

// PriceSeries is an immutable, chronologically ordered sequence of prices.
type PriceSeries struct {
	points []PricePoint
}

// NewPriceSeries copies points into a PriceSeries. Dates must be strictly
// increasing and defined prices finite and non-negative.
func NewPriceSeries(points []PricePoint) (*PriceSeries, error) {
	out := make([]PricePoint, len(points))
	for i, p := range points {
		if i > 0 && !p.Date.After(points[i-1].Date) {
			return nil, &NonMonotonicDateError{
				Index: i,
				Raw:   p.dateText(),
				Prev:  points[i-1].dateText(),
			}
		}
		if x, ok := p.Price.Get(); ok && x < 0 {
			return nil, fmt.Errorf("point %d: negative price %g", i, x)
		}
		out[i] = p
	}
	return &PriceSeries{points: out}, nil
}

func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

func (s *PriceSeries) At(i int) PricePoint {
	return s.points[i]
}

// Points returns a copy of the underlying points.
func (s *PriceSeries) Points() []PricePoint {
	return append([]PricePoint(nil), s.points...)
}

// Prices returns the prices in order, undefined entries included.
func (s *PriceSeries) Prices() []Value {
	out := make([]Value, len(s.points))
	for i, p := range s.points {
		out[i] = p.Price
	}
	return out
}

// Observations returns the series as renderer-facing (date, price) pairs.
func (s *PriceSeries) Observations() []Observation {
	out := make([]Observation, len(s.points))
	for i, p := range s.points {
		out[i] = Observation{Date: p.Date, Label: p.Label, Value: p.Price}
	}
	return out
}

// Series is an immutable sequence of observations aligned with the price
// series it was derived from.
type Series struct {
	obs []Observation
}

func newSeries(obs []Observation) Series {
	return Series{obs: append([]Observation(nil), obs...)}
}

func (s Series) Len() int { return len(s.obs) }

func (s Series) At(i int) Observation { return s.obs[i] }

// Observations returns a copy of the underlying observations.
func (s Series) Observations() []Observation {
	return append([]Observation(nil), s.obs...)
}

// Values returns the values in order, undefined entries included.
func (s Series) Values() []Value {
	out := make([]Value, len(s.obs))
	for i, o := range s.obs {
		out[i] = o.Value
	}
	return out
}

// ReturnSeries holds one log return per price. Element 0 is undefined.
type ReturnSeries struct {
	Series
}

func NewReturnSeries(obs []Observation) *ReturnSeries {
	return &ReturnSeries{Series: newSeries(obs)}
}

// VolatilitySeries holds a trailing rolling standard deviation of returns.
type VolatilitySeries struct {
	Series
	window int
}

func NewVolatilitySeries(obs []Observation, window int) *VolatilitySeries {
	return &VolatilitySeries{Series: newSeries(obs), window: window}
}

// Window is the number of returns in each rolling sample.
func (s *VolatilitySeries) Window() int {
	return s.window
}
