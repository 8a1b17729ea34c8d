package queue

import "time"

// BookingConfirmedQueue is the durable queue carrying confirmation events.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a completed payment confirms a
// booking. Consumers use it for notifications and audit logging.
type BookingConfirmedEvent struct {
	BookingID     int64     `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	RoomNumbers   []string  `json:"room_numbers"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
