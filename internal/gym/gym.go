package gym

import (
	"errors"
	"time"
)

var ErrGymNotFound = errors.New("gym not found")

type Gym struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	PriceRange  string    `json:"priceRange"`
	Rating      float64   `json:"rating"`
	Featured    bool      `json:"featured"`
	Description string    `json:"description"`
	Amenities   []string  `json:"amenities"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Filter narrows gym listings, empty fields mean no restriction.
// Search matches name, address and amenities, case-insensitive substring.
type Filter struct {
	City       string
	PriceRange string
	Search     string
}
