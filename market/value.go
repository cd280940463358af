package market

import (
	"math"
	"strconv"
)

// Value is an optional float64. The zero Value is undefined.
//
// Undefined marks "no data here" (insufficient history, a missing or
// non-positive price) and is distinct from NaN, which Some never stores.
type Value struct {
	v  float64
	ok bool
}

// Some returns a defined Value. NaN and infinities are treated as undefined.
func Some(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}
	}
	return Value{v: x, ok: true}
}

// None returns an undefined Value.
func None() Value {
	return Value{}
}

// Get returns the float and whether it is defined.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

func (v Value) Valid() bool {
	return v.ok
}

// Or returns the value, or def when undefined.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// String renders the value with 6 decimals, or "" when undefined.
func (v Value) String() string {
	if !v.ok {
		return ""
	}
	return strconv.FormatFloat(v.v, 'f', 6, 64)
}
