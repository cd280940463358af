package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Date patterns use strftime syntax.
const (
	DefaultSourceFormat = "%m/%d/%Y"
	DefaultTargetFormat = "%d/%m/%Y"
)

// RawRecord is one loaded row before normalization. Index is the row's
// position in the source (0-based, header excluded).
type RawRecord struct {
	Index int
	Date  string
	Price Value
}

// Order tells Normalize how the raw records are arranged.
type Order int

const (
	// OrderDetect reverses the records only when the first date is later
	// than the last one.
	OrderDetect Order = iota
	// OrderNewestFirst asserts the source is newest-first and always
	// reverses. Feeding it chronological input fails the ascending check.
	OrderNewestFirst
	// OrderOldestFirst never reverses.
	OrderOldestFirst
)

var orderNames = map[Order]string{
	OrderDetect:      "detect",
	OrderNewestFirst: "newest-first",
	OrderOldestFirst: "oldest-first",
}

func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps a config string to an Order. The empty string is
// OrderDetect.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OrderDetect, nil
	}
	for o, name := range orderNames {
		if name == s {
			return o, nil
		}
	}
	return OrderDetect, fmt.Errorf("unknown order %q (supported: detect, newest-first, oldest-first)", s)
}

// NormalizeOptions configures Normalize. Empty formats fall back to the
// defaults.
type NormalizeOptions struct {
	SourceFormat string
	TargetFormat string
	Order        Order
}

// ValidateDateFormat reports whether pattern is a strftime pattern that can
// be used for both parsing and formatting.
func ValidateDateFormat(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("empty date format")
	}
	if _, err := strftime.Layout(pattern); err != nil {
		return fmt.Errorf("date format %q: %w", pattern, err)
	}
	return nil
}

// Normalize parses every raw date under the source format, puts the
// records in chronological order and renders each date in the target
// format. Any unparseable date or ordering violation fails the whole batch.
//
// Records are not modified.
func Normalize(records []RawRecord, opts NormalizeOptions) (*PriceSeries, error) {
	src := opts.SourceFormat
	if src == "" {
		src = DefaultSourceFormat
	}
	tgt := opts.TargetFormat
	if tgt == "" {
		tgt = DefaultTargetFormat
	}

	n := len(records)
	dates := make([]time.Time, n)
	for i, r := range records {
		t, err := strftime.Parse(src, strings.TrimSpace(r.Date))
		if err != nil {
			return nil, &MalformedDateError{Index: r.Index, Raw: r.Date, Format: src, Err: err}
		}
		dates[i] = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	reverse := false
	switch opts.Order {
	case OrderNewestFirst:
		reverse = true
	case OrderDetect:
		reverse = n > 1 && dates[0].After(dates[n-1])
	}

	points := make([]PricePoint, n)
	for k := 0; k < n; k++ {
		j := k
		if reverse {
			j = n - 1 - k
		}
		if k > 0 {
			prev := k - 1
			if reverse {
				prev = j + 1
			}
			if !dates[j].After(dates[prev]) {
				return nil, &NonMonotonicDateError{
					Index: records[j].Index,
					Raw:   records[j].Date,
					Prev:  records[prev].Date,
				}
			}
		}
		points[k] = PricePoint{
			Date:  dates[j],
			Label: strftime.Format(tgt, dates[j]),
			Price: records[j].Price,
		}
	}

	return &PriceSeries{points: points}, nil
}
