// Package dates parses and formats calendar dates against an explicit, ordered list of layouts.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// CanonicalLayout renders dates as dd/MM/yyyy.
const CanonicalLayout = "02/01/2006"

// DefaultLayouts lists the accepted input layouts in precedence order:
// dd/MM/yyyy, yyyy/MM/dd, yyyy-MM-dd, dd-MM-yyyy, d/M/yyyy, dd MMMM yyyy, dd MM yyyy.
var DefaultLayouts = []string{
	CanonicalLayout,
	"2006/01/02",
	"2006-01-02",
	"02-01-2006",
	"2/1/2006",
	"02 January 2006",
	"02 01 2006",
}

// Parse tries each layout in order and returns the calendar date of the first one that matches.
// The result is normalised to midnight UTC.
func Parse(input string, layouts []string) (time.Time, error) {
	value := strings.TrimSpace(input)
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return DateOf(parsed), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q matches no accepted pattern", domainerrors.ErrInvalidDate, input)
}

// Format renders a date in the canonical layout.
func Format(t time.Time) string {
	return t.Format(CanonicalLayout)
}

// DateOf drops the clock component, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
