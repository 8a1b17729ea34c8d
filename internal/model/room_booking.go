package model

import "time"

// RoomBooking is one row of the booking-to-room join table. PricePerNight is
// copied from the room at assignment time and never updated afterwards, so a
// booking's total stays stable when room prices change.
type RoomBooking struct {
	ID            int64     `json:"id"`              // unique assignment ID
	BookingID     int64     `json:"booking_id"`      // FK to bookings
	RoomID        int64     `json:"room_id"`         // FK to rooms
	PricePerNight float64   `json:"price_per_night"` // snapshotted nightly price
	CreatedAt     time.Time `json:"created_at"`      // assignment timestamp
}
