package parser

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the wall-clock portion of the fixed line prefix.
// Every interesting log line starts with "2012-05-30 09:28:56.233-0700: ...".
const TimestampLayout = "2006-01-02 15:04:05.000"

// offsetWidth covers the "±HHMM" tail of the prefix.
const offsetWidth = len("-0700")

// PrefixWidth is the full width of the timestamp prefix, offset included.
const PrefixWidth = len(TimestampLayout) + offsetWidth

// ErrMalformedTimestamp reports a line whose leading characters do not form a
// valid timestamp prefix.
var ErrMalformedTimestamp = errors.New("malformed timestamp prefix")

// ParseTimestamp parses the timestamp prefix of a log line. The timezone
// offset is validated for shape and then discarded; instants are wall-clock
// values, so ordering across files assumes all inputs share one timezone.
func ParseTimestamp(text string) (time.Time, error) {
	if len(text) < PrefixWidth {
		return time.Time{}, fmt.Errorf("%w: line shorter than %d characters", ErrMalformedTimestamp, PrefixWidth)
	}

	if offset := text[len(TimestampLayout):PrefixWidth]; !validOffset(offset) {
		return time.Time{}, fmt.Errorf("%w: bad offset %q", ErrMalformedTimestamp, offset)
	}

	ts, err := time.Parse(TimestampLayout, text[:len(TimestampLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}

	return ts, nil
}

// validOffset reports whether s has the shape ±HHMM.
func validOffset(s string) bool {
	if s[0] != '+' && s[0] != '-' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatTimestamp renders an instant in the log's own wall-clock format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
