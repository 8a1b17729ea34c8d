package model

import "time"

// Room statuses. The status field is operational state (housekeeping,
// maintenance), not availability for a date range.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room is a physical hotel room. PricePerNight is the live price used when a
// room is attached to a booking; the attachment snapshots it so later price
// edits never change existing bookings.
type Room struct {
	ID            int64     `json:"id"`              // unique room ID
	RoomNumber    string    `json:"room_number"`     // door number, unique
	RoomTypeID    int64     `json:"room_type_id"`    // FK to room_types
	Floor         int       `json:"floor"`           // floor the room is on
	Status        string    `json:"status"`          // operational status
	PricePerNight float64   `json:"price_per_night"` // current nightly price
	CreatedAt     time.Time `json:"created_at"`      // creation timestamp
	UpdatedAt     time.Time `json:"updated_at"`      // last update timestamp

	// TypeName is populated by list/detail queries that join room_types.
	TypeName string `json:"type_name,omitempty"`
}
