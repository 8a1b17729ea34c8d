package model

import "time"

// Booking lifecycle statuses. A completed payment moves a booking from
// pending to confirmed inside the same transaction as the payment write.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCheckedIn = "checked_in"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a stay reservation for one customer covering one or more rooms.
// TotalAmount is derived: nights between the dates times the sum of the
// snapshotted nightly prices of the attached rooms.
type Booking struct {
	ID              int64     `json:"id"`               // unique booking ID
	CustomerID      int64     `json:"customer_id"`      // FK to customers
	CheckInDate     time.Time `json:"check_in_date"`    // stay start
	CheckOutDate    time.Time `json:"check_out_date"`   // stay end, after check-in
	TotalAmount     float64   `json:"total_amount"`     // derived total price
	Status          string    `json:"status"`           // lifecycle status
	SpecialRequests string    `json:"special_requests"` // free-form notes
	CreatedAt       time.Time `json:"created_at"`       // creation timestamp
	UpdatedAt       time.Time `json:"updated_at"`       // last update timestamp

	// Populated by detail/list queries that join customers and room_bookings.
	CustomerName    string       `json:"customer_name,omitempty"`
	CustomerEmail   string       `json:"customer_email,omitempty"`
	CustomerPhone   string       `json:"customer_phone,omitempty"`
	CustomerAddress string       `json:"customer_address,omitempty"`
	Rooms           []BookedRoom `json:"rooms,omitempty"`
}

// BookedRoom is a room attached to a booking together with the price
// snapshot taken at assignment time.
type BookedRoom struct {
	RoomID        int64   `json:"room_id"`         // FK to rooms
	RoomNumber    string  `json:"room_number"`     // door number at query time
	TypeName      string  `json:"type_name"`       // room type name at query time
	Floor         int     `json:"floor"`           // floor at query time
	PricePerNight float64 `json:"price_per_night"` // snapshotted nightly price
}
