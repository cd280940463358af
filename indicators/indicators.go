// Package indicators derives return and volatility series from prices.
package indicators

import "github.com/rustyeddy/natgasvol/market"

// Indicator computes a single streaming value from a sequence of samples.
// It is deterministic and produces the same result as the batch functions.
type Indicator interface {
	// Name returns a stable identifier like "StdDev(156)".
	Name() string

	// Warmup returns how many consecutive defined samples are needed before
	// Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next sample. An undefined sample breaks the run
	// of consecutive samples.
	Update(v market.Value)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool
}

type ValueF64 interface {
	// Value returns the current indicator value. If !Ready(), it returns 0;
	// callers should always check Ready().
	Value() float64
}
