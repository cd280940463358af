package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/natgasvol/market"
)

// RollingStdDev is a streaming sample standard deviation over the last
// period samples. It keeps a running mean and sum of squared deviations
// (Welford) and slides them as samples leave the window, so each Update is
// O(1). Samples enter the running sums relative to a shift close to the
// window mean, which keeps small spreads on large levels exact to subtract.
// Mean, sums and shift are recomputed from the buffer once per full turn of
// the window. An undefined sample clears the window.
type RollingStdDev struct {
	period int
	buf    []float64
	head   int // index of the oldest sample once the buffer is full
	count  int
	shift  float64
	mean   float64 // of samples minus shift
	m2     float64
	slides int // replacements since the last resync
}

// NewRollingStdDev creates a RollingStdDev. period must be at least 2.
func NewRollingStdDev(period int) *RollingStdDev {
	return &RollingStdDev{
		period: period,
		buf:    make([]float64, max(period, 0)),
	}
}

func (s *RollingStdDev) Name() string {
	return fmt.Sprintf("StdDev(%d)", s.period)
}

func (s *RollingStdDev) Warmup() int {
	return s.period
}

func (s *RollingStdDev) Reset() {
	s.head = 0
	s.count = 0
	s.shift = 0
	s.mean = 0
	s.m2 = 0
	s.slides = 0
}

func (s *RollingStdDev) Update(v market.Value) {
	x, ok := v.Get()
	if !ok || s.period < 1 {
		s.Reset()
		return
	}

	if s.count < s.period {
		if s.count == 0 {
			s.shift = x
		}
		s.buf[s.count] = x
		s.count++
		y := x - s.shift
		delta := y - s.mean
		s.mean += delta / float64(s.count)
		s.m2 += delta * (y - s.mean)
		return
	}

	// Replace the oldest sample.
	old := s.buf[s.head]
	s.buf[s.head] = x
	s.head = (s.head + 1) % s.period

	y, yOld := x-s.shift, old-s.shift
	prevMean := s.mean
	s.mean += (y - yOld) / float64(s.period)
	s.m2 += (y - yOld) * (y - s.mean + yOld - prevMean)
	if s.m2 < 0 {
		s.m2 = 0
	}

	s.slides++
	if s.slides >= s.period {
		s.resync()
	}
}

func (s *RollingStdDev) resync() {
	s.slides = 0
	shift := 0.0
	for _, x := range s.buf {
		shift += x
	}
	shift /= float64(s.period)

	mean := 0.0
	for _, x := range s.buf {
		mean += x - shift
	}
	mean /= float64(s.period)
	m2 := 0.0
	for _, x := range s.buf {
		d := x - shift - mean
		m2 += d * d
	}
	s.shift, s.mean, s.m2 = shift, mean, m2
}

func (s *RollingStdDev) Ready() bool {
	return s.period > 1 && s.count >= s.period
}

func (s *RollingStdDev) Value() float64 {
	if !s.Ready() {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.period-1))
}
