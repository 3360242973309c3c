package domain

import (
	"fmt"
	"time"
)

// dateLayout is the ISO-8601 calendar date layout used on every boundary.
const dateLayout = "2006-01-02"

// secondsPerDay converts UTC-midnight Unix seconds into whole days.
const secondsPerDay = 24 * 60 * 60

// CalendarDate is a civil date with no time-of-day and no zone attached.
// Obtain one from an instant with DateIn, never from time.Local.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate builds a date and rejects impossible combinations
// such as 2025-02-30 instead of normalizing them the way time.Date does.
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return CalendarDate{}, err
	}

	return d, nil
}

// MustCalendarDate is NewCalendarDate for package-level constants and tests.
func MustCalendarDate(year int, month time.Month, day int) CalendarDate {
	d, err := NewCalendarDate(year, month, day)
	if err != nil {
		panic(err)
	}

	return d
}

// ParseCalendarDate parses a YYYY-MM-DD string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return CalendarDate{}, NewValidationErrorWithValue("date", "must be formatted as YYYY-MM-DD", s)
	}

	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateIn returns the calendar date that instant t falls on in loc.
func DateIn(t time.Time, loc *time.Location) (CalendarDate, error) {
	if loc == nil {
		return CalendarDate{}, NewArithmeticDomainError("date conversion", "time zone location is nil")
	}

	y, m, d := t.In(loc).Date()

	return CalendarDate{Year: y, Month: m, Day: d}, nil
}

// Validate reports whether the date exists in the proleptic Gregorian calendar.
func (d CalendarDate) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return NewArithmeticDomainError("calendar date", fmt.Sprintf("month %d out of range", int(d.Month)))
	}

	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return NewArithmeticDomainError("calendar date",
			fmt.Sprintf("day %d out of range for %04d-%02d", d.Day, d.Year, int(d.Month)))
	}

	return nil
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler so dates serialize as YYYY-MM-DD.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseCalendarDate(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// SerialDay returns the number of days between 1970-01-01 and d, using
// UTC-midnight arithmetic so the result never depends on a zone offset.
func (d CalendarDate) SerialDay() (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	return floorDiv(d.utcMidnight().Unix(), secondsPerDay), nil
}

// AddDays returns the date n days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := d.utcMidnight().AddDate(0, 0, n)

	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}

	if d.Month != other.Month {
		return d.Month < other.Month
	}

	return d.Day < other.Day
}

func (d CalendarDate) utcMidnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// floorDiv divides rounding toward negative infinity, so dates before the
// epoch land on the correct serial day.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
