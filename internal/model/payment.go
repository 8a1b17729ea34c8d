package model

import "time"

// Payment statuses. Only "completed" has a side effect: recording or
// updating a payment as completed confirms its booking.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment records money received for a booking. Each booking has at most one
// payment, enforced by a unique key on booking_id.
type Payment struct {
	ID            int64     `json:"id"`             // unique payment ID
	BookingID     int64     `json:"booking_id"`     // FK to bookings, unique
	Amount        float64   `json:"amount"`         // amount paid
	PaymentMethod string    `json:"payment_method"` // e.g. "card", "cash"
	PaymentStatus string    `json:"payment_status"` // lifecycle status
	TransactionID string    `json:"transaction_id"` // external reference, optional
	PaymentDate   time.Time `json:"payment_date"`   // when the payment was taken
	UpdatedAt     time.Time `json:"updated_at"`     // last update timestamp
}
