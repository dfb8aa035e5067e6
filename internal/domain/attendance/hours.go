package attendance

import (
	"math"
	"time"
)

// HoursBetween returns the worked hours from checkIn to checkOut rounded to
// two decimals. Negative spans yield 0.
func HoursBetween(checkIn, checkOut time.Time) float64 {
	h := math.Round(checkOut.Sub(checkIn).Hours()*100) / 100
	if h < 0 {
		return 0
	}
	return h
}

// DeriveHours is HoursBetween when both ends are known and 0 otherwise.
func DeriveHours(checkIn, checkOut *time.Time) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	return HoursBetween(*checkIn, *checkOut)
}
