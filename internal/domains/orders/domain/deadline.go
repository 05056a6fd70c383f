package domain

import (
	"time"

	"github.com/Apurer/order-registry/internal/shared/dates"
)

// Deadline is the calendar date an order is due.
type Deadline struct {
	date time.Time
}

// NewDeadline parses input against the default accepted layouts.
func NewDeadline(input string) (Deadline, error) {
	return ParseDeadline(input, dates.DefaultLayouts)
}

// ParseDeadline parses input against layouts, first match wins.
func ParseDeadline(input string, layouts []string) (Deadline, error) {
	date, err := dates.Parse(input, layouts)
	if err != nil {
		return Deadline{}, err
	}
	return Deadline{date: date}, nil
}

// DeadlineOn wraps an already-known date.
func DeadlineOn(t time.Time) Deadline {
	return Deadline{date: dates.DateOf(t)}
}

func (d Deadline) Date() time.Time { return d.date }

// IsWithinDaysFrom reports whether the deadline falls no more than days calendar days after now.
// Deadlines already in the past always qualify.
func (d Deadline) IsWithinDaysFrom(now time.Time, days int) bool {
	return dates.DaysBetween(now, d.date) <= days
}

// IsWithinDaysFromNow is IsWithinDaysFrom against the wall clock.
func (d Deadline) IsWithinDaysFromNow(days int) bool {
	return d.IsWithinDaysFrom(time.Now(), days)
}

func (d Deadline) Equal(other Deadline) bool { return d.date.Equal(other.date) }

func (d Deadline) String() string { return dates.Format(d.date) }

// CreationDate is stamped once when an order is created.
type CreationDate struct {
	date time.Time
}

// CreationDateOf stamps the calendar date of t.
func CreationDateOf(t time.Time) CreationDate {
	return CreationDate{date: dates.DateOf(t)}
}

// ParseCreationDate restores a stored creation date.
func ParseCreationDate(input string) (CreationDate, error) {
	date, err := dates.Parse(input, dates.DefaultLayouts)
	if err != nil {
		return CreationDate{}, err
	}
	return CreationDate{date: date}, nil
}

func (c CreationDate) Date() time.Time { return c.date }

func (c CreationDate) String() string { return dates.Format(c.date) }
