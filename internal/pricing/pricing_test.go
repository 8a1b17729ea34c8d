package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"three full days", date("2025-01-10"), date("2025-01-13"), 3},
		{"one day", date("2025-01-10"), date("2025-01-11"), 1},
		{"same instant", date("2025-01-10"), date("2025-01-10"), 0},
		{"inverted", date("2025-01-13"), date("2025-01-10"), 0},
		{
			// late check-in to early check-out still charges a full night
			"partial day rounds up",
			time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC),
			1,
		},
		{
			"just over a day rounds to two",
			time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 11, 13, 0, 0, 0, time.UTC),
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 750.0, Total(3, []float64{100, 150}))
	assert.Equal(t, 100.0, Total(1, []float64{100}))
	assert.Equal(t, 0.0, Total(0, []float64{100, 150}))
	assert.Equal(t, 0.0, Total(3, nil))
	assert.Equal(t, 0.0, Total(-1, []float64{100}))
}

func TestTotalMatchesNightsByRooms(t *testing.T) {
	checkIn := date("2025-03-01")
	checkOut := date("2025-03-04")
	nights := Nights(checkIn, checkOut)
	assert.Equal(t, 3, nights)
	// two rooms at 100 and 150 over three nights
	assert.Equal(t, 750.0, Total(nights, []float64{100, 150}))
}
