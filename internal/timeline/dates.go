package timeline

import "time"

// All timeline comparisons happen at day granularity so the view does not
// flicker as "now" advances within a day.

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// CeilToDay rounds t up to the next midnight; exact midnights stay put.
func CeilToDay(t time.Time) time.Time {
	s := StartOfDay(t)
	if t.Equal(s) {
		return s
	}
	return s.AddDate(0, 0, 1)
}

// DaysBetween returns the number of calendar days from day(a) to day(b).
// Negative when b's day precedes a's. Each time's day is read in its own
// location, then compared on a common clock so mixed zones cannot produce
// a partial day that truncates the wrong way.
func DaysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}

// civilDay pins t's calendar date to UTC midnight.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
