package model

import "time"

// Testimonial is an optional client quote shown on the clients page. Stored
// as JSON in the `testimonial_json` column; absent when the client gave none.
type Testimonial struct {
	Text     LocalizedText `json:"text"`
	Author   string        `json:"author"`
	Position string        `json:"position,omitempty"`
}

// Client represents a row in the `clients` table.
type Client struct {
	ID          uint64        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	LogoURL     string        `json:"logoUrl"`
	Website     string        `json:"website,omitempty"`
	Industry    string        `json:"industry,omitempty"`
	Featured    bool          `json:"isFeatured"`
	Order       int           `json:"order"`
	Testimonial *Testimonial  `json:"testimonial,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
