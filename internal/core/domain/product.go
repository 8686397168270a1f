package domain

import "time"

// Product is owned by the seller that created it. ImageIDs references media
// records held by the media service; the list is appended to over the
// internal sync channel and may lag behind the media service's own records.
type Product struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageIDs    []string  `json:"imageIds"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
