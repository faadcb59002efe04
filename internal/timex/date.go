// Package timex holds calendar-date helpers: the persisted date layout,
// a clock seam and ISO week windows.
package timex

import "time"

// DateLayout is the on-disk layout of sale dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Clock returns the current instant. Production code uses time.Now;
// tests pin it.
type Clock func() time.Time

// Today truncates the clock reading to a calendar day in UTC.
func (c Clock) Today() time.Time {
	return DateOf(c())
}

// DateOf drops the time-of-day and location of t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekBounds returns the Monday and Sunday of the ISO week containing day.
// Both bounds are calendar days and inclusive.
func WeekBounds(day time.Time) (monday, sunday time.Time) {
	day = DateOf(day)
	offset := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// Within reports whether day lies in [from, to], comparing calendar days.
func Within(day, from, to time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}
