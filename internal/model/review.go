package model

import "time"

// Review is a customer's rating of a room. Rating is an integer from 1 to 5.
type Review struct {
	ID         int64     `json:"id"`          // unique review ID
	RoomID     int64     `json:"room_id"`     // FK to rooms
	CustomerID int64     `json:"customer_id"` // FK to customers
	Rating     int       `json:"rating"`      // 1..5
	Comment    string    `json:"comment"`     // free-form text, optional
	CreatedAt  time.Time `json:"created_at"`  // creation timestamp
	UpdatedAt  time.Time `json:"updated_at"`  // last update timestamp

	// Populated by list queries that join rooms and customers.
	RoomNumber   string `json:"room_number,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}
