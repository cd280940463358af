package market

import "fmt"

// MalformedDateError reports a date that could not be parsed under the
// source format. Index is the record's position in the source input.
type MalformedDateError struct {
	Index  int
	Raw    string
	Format string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("record %d: malformed date %q (format %q): %v", e.Index, e.Raw, e.Format, e.Err)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

// NonMonotonicDateError reports a duplicate or decreasing date once the
// records have been put in chronological order.
//
// From Normalize, Index is the record's source row and Raw/Prev are the date
// text as read. From NewPriceSeries, Index is the position in the points
// slice and Raw/Prev are the points' labels, or ISO dates when unlabelled.
type NonMonotonicDateError struct {
	Index int
	Raw   string
	Prev  string // date of the record it should follow
}

func (e *NonMonotonicDateError) Error() string {
	return fmt.Sprintf("record %d: date %q does not follow %q (dates must be strictly increasing)", e.Index, e.Raw, e.Prev)
}

// InvalidWindowError reports a rolling window that cannot produce a sample
// standard deviation.
type InvalidWindowError struct {
	Window int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window %d: must be an integer greater than 1", e.Window)
}

// MissingFieldError reports an expected column absent from the header or
// from a row. Index is -1 for the header.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("header: missing column %q", e.Field)
	}
	return fmt.Sprintf("record %d: missing field %q", e.Index, e.Field)
}

// MalformedPriceError reports price text that is not a finite,
// non-negative number.
type MalformedPriceError struct {
	Index int
	Field string
	Raw   string
	Err   error
}

func (e *MalformedPriceError) Error() string {
	return fmt.Sprintf("record %d: malformed %s %q: %v", e.Index, e.Field, e.Raw, e.Err)
}

func (e *MalformedPriceError) Unwrap() error { return e.Err }
