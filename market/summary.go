package market

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the defined values of a series. Undefined entries are
// counted but never enter the statistics.
type Summary struct {
	Count     int
	Undefined int
	Mean      float64
	Min       float64
	Max       float64
	Last      Value
}

// Summarize filters out undefined values and reduces the rest. With no
// defined values Mean, Min and Max are zero and Last is undefined.
func Summarize(values []Value) Summary {
	var s Summary
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		x, ok := v.Get()
		if !ok {
			s.Undefined++
			continue
		}
		defined = append(defined, x)
		s.Last = v
	}

	s.Count = len(defined)
	if s.Count == 0 {
		return s
	}

	s.Mean = stat.Mean(defined, nil)
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, x := range defined {
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	return s
}
