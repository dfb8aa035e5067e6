package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaysInMonth(t *testing.T) {
	cases := []struct {
		year, month int
		want        int
	}{
		{2024, 2, 21}, // leap February
		{2023, 2, 20},
		{2025, 1, 23},
		{2024, 6, 20},
		{2024, 9, 21},
		{2026, 2, 20},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WeekdaysInMonth(c.year, c.month), "%d-%02d", c.year, c.month)
	}
}

func TestWeekdaysInMonth_MatchesCalendarWalk(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			want := 0
			for d := 1; d <= 31; d++ {
				day := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
				if int(day.Month()) != month {
					break
				}
				if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
					want++
				}
			}
			assert.Equal(t, want, WeekdaysInMonth(year, month))
		}
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(2024, 2))
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC), EndOfMonth(2024, 2))
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999_000_000, time.UTC), EndOfMonth(2024, 12))
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 2025-01-11 02:00 at UTC+7 is still 2025-01-10 in UTC
	ts := time.Date(2025, 1, 11, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-01-10T17:32:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/01/2025")
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2025-01-10T09:05:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 9, 5, 0, 0, time.UTC), ts.UTC())

	_, err = ParseTimestamp("2025-01-10")
	assert.Error(t, err)
}
