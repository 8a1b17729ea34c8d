// Package pricing derives booking totals from stay dates and the nightly
// price snapshots of the assigned rooms.
package pricing

import (
	"math"
	"time"
)

// Nights returns the number of chargeable nights between check-in and
// check-out: the elapsed time divided by 24 hours, rounded up. Any positive
// fraction of a day counts as a full night, so a late check-in followed by an
// early check-out the next day is still one night. Non-positive spans yield
// zero.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Total multiplies the night count by the sum of nightly prices. With no
// rooms or no nights the total is zero.
func Total(nights int, pricesPerNight []float64) float64 {
	if nights <= 0 {
		return 0
	}
	var sum float64
	for _, p := range pricesPerNight {
		sum += p
	}
	return float64(nights) * sum
}
