package planmonth

import (
	"fmt"
	"time"
)

// Month is a calendar planning period in "YYYY-MM" form. It is the governing
// attribute of every object in the planning tree and is always resolved from
// the owning objective, never stored on children.
type Month struct {
	year  int
	month time.Month
}

const layout = "2006-01"

func Parse(value string) (Month, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", value)
	}
	return Month{year: t.Year(), month: t.Month()}, nil
}

// MustParse parses a month or panics. Intended for tests and constants.
func MustParse(value string) Month {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

func (m Month) IsZero() bool {
	return m.year == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

func (m Month) Year() int {
	return m.year
}

func (m Month) Month() time.Month {
	return m.month
}

// Start returns the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Next() Month {
	return Of(m.Start().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return Of(m.Start().AddDate(0, -1, 0))
}

// Compare returns -1, 0 or 1 comparing m against other in calendar order.
func (m Month) Compare(other Month) int {
	switch {
	case m.year != other.year:
		if m.year < other.year {
			return -1
		}
		return 1
	case m.month != other.month:
		if m.month < other.month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

func (m Month) After(other Month) bool {
	return m.Compare(other) > 0
}

// Status classifies a month against wall-clock time.
type Status int

const (
	StatusPast Status = iota
	StatusCurrent
	StatusFuture
)

func (s Status) String() string {
	switch s {
	case StatusPast:
		return "past"
	case StatusCurrent:
		return "current"
	case StatusFuture:
		return "future"
	default:
		return "unknown"
	}
}

// StatusAt classifies the month relative to now. The transition current->past
// is implicit: it is nothing but this comparison moving forward.
func (m Month) StatusAt(now time.Time) Status {
	switch m.Compare(Of(now)) {
	case -1:
		return StatusPast
	case 0:
		return StatusCurrent
	default:
		return StatusFuture
	}
}

// ReadOnlyAt reports whether the month is frozen. Read-only is a property of
// the month alone: past is past for everyone.
func (m Month) ReadOnlyAt(now time.Time) bool {
	return m.StatusAt(now) == StatusPast
}
