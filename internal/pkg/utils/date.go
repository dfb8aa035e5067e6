package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first instant of the month (month is 1..12).
func StartOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last millisecond of the month.
func EndOfMonth(year, month int) time.Time {
	return StartOfMonth(year, month).AddDate(0, 1, 0).Add(-time.Millisecond)
}

// WeekdaysInMonth counts Monday to Friday dates in the month. Holidays are not excluded.
func WeekdaysInMonth(year, month int) int {
	start := StartOfMonth(year, month)
	end := EndOfMonth(year, month)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// ParseDate accepts either YYYY-MM-DD or an RFC3339 timestamp and returns its UTC date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOnly(t), nil
}

// ParseTimestamp parses an RFC3339 timestamp (nanoseconds optional).
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
