package model

import "time"

// RoomType is a category of rooms (e.g. "Deluxe", "Suite") with a base price
// and a JSON list of amenities. Rooms reference a RoomType but carry their own
// nightly price.
type RoomType struct {
	ID           int64     `json:"id"`            // unique room type ID
	Name         string    `json:"name"`          // display name, unique
	Description  string    `json:"description"`   // free-form description
	BasePrice    float64   `json:"base_price"`    // reference price per night
	MaxOccupancy int       `json:"max_occupancy"` // guests the type accommodates
	Amenities    []string  `json:"amenities"`     // amenity labels, stored as JSON
	CreatedAt    time.Time `json:"created_at"`    // creation timestamp
	UpdatedAt    time.Time `json:"updated_at"`    // last update timestamp
}
