package model

import "time"

// Customer is a hotel guest. Email is unique; the identity document fields
// are optional and only filled at check-in.
type Customer struct {
	ID        int64     `json:"id"`         // unique customer ID
	FirstName string    `json:"first_name"` // given name
	LastName  string    `json:"last_name"`  // family name
	Email     string    `json:"email"`      // contact email, unique
	Phone     string    `json:"phone"`      // contact phone, optional
	Address   string    `json:"address"`    // postal address, optional
	IDType    string    `json:"id_type"`    // identity document type, optional
	IDNumber  string    `json:"id_number"`  // identity document number, optional
	CreatedAt time.Time `json:"created_at"` // creation timestamp
	UpdatedAt time.Time `json:"updated_at"` // last update timestamp
}
