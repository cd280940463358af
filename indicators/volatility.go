package indicators

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/natgasvol/market"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is three years of weekly returns.
const DefaultWindow = 156

// Strategy selects how each rolling window is evaluated. All strategies
// agree within floating-point tolerance.
type Strategy int

const (
	// Recompute takes a two-pass mean and deviation over every window.
	Recompute Strategy = iota
	// Incremental slides a RollingStdDev along the series.
	Incremental
	// Reference evaluates each window with gonum's stat.StdDev.
	Reference
)

var strategyNames = map[Strategy]string{
	Recompute:   "recompute",
	Incremental: "incremental",
	Reference:   "reference",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a config string to a Strategy. The empty string is
// Recompute.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Recompute, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return Recompute, fmt.Errorf("unknown strategy %q (supported: recompute, incremental, reference)", name)
}

type volatilityOptions struct {
	strategy Strategy
}

// VolatilityOption configures RollingVolatility.
type VolatilityOption func(*volatilityOptions)

func WithStrategy(s Strategy) VolatilityOption {
	return func(o *volatilityOptions) { o.strategy = s }
}

// ValidateWindow returns an InvalidWindowError for windows that cannot
// hold two samples.
func ValidateWindow(window int) error {
	if window <= 1 {
		return &market.InvalidWindowError{Window: window}
	}
	return nil
}

// RollingVolatility computes the trailing sample standard deviation (N-1
// denominator) of returns over window samples. Output i is defined only when
// returns i-window+1..i are all in bounds and defined. A window longer than
// the series is not an error; every output is then undefined.
func RollingVolatility(returns *market.ReturnSeries, window int, opts ...VolatilityOption) (*market.VolatilitySeries, error) {
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}
	o := volatilityOptions{strategy: Recompute}
	for _, opt := range opts {
		opt(&o)
	}

	var vals []market.Value
	switch o.strategy {
	case Recompute:
		vals = rollingRecompute(returns.Values(), window, twoPassStdDev)
	case Reference:
		vals = rollingRecompute(returns.Values(), window, func(xs []float64) float64 {
			return stat.StdDev(xs, nil)
		})
	case Incremental:
		vals = rollingIncremental(returns.Values(), window)
	default:
		return nil, fmt.Errorf("unknown strategy %v", o.strategy)
	}

	obs := returns.Observations()
	for i := range obs {
		obs[i].Value = vals[i]
	}
	return market.NewVolatilitySeries(obs, window), nil
}

func rollingRecompute(values []market.Value, window int, stddev func([]float64) float64) []market.Value {
	out := make([]market.Value, len(values))
	sample := make([]float64, window)
	run := 0 // consecutive defined values ending at i
	for i, v := range values {
		if !v.Valid() {
			run = 0
			continue
		}
		run++
		if run < window {
			continue
		}
		for k := 0; k < window; k++ {
			sample[k] = values[i-window+1+k].Or(0)
		}
		out[i] = market.Some(stddev(sample))
	}
	return out
}

func rollingIncremental(values []market.Value, window int) []market.Value {
	out := make([]market.Value, len(values))
	sd := NewRollingStdDev(window)
	for i, v := range values {
		sd.Update(v)
		if sd.Ready() {
			out[i] = market.Some(sd.Value())
		}
	}
	return out
}

func twoPassStdDev(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// Annualize scales every defined volatility by sqrt(periodsPerYear), 52 for
// weekly data. Undefined entries stay undefined.
func Annualize(vol *market.VolatilitySeries, periodsPerYear float64) *market.VolatilitySeries {
	k := math.Sqrt(periodsPerYear)
	obs := vol.Observations()
	for i := range obs {
		if x, ok := obs[i].Value.Get(); ok {
			obs[i].Value = market.Some(x * k)
		}
	}
	return market.NewVolatilitySeries(obs, vol.Window())
}
