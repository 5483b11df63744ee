package model

import "time"

// Partner represents a row in the `partners` table: a company logo shown on
// the partners page, optionally promoted to the homepage via Featured.
type Partner struct {
	ID          uint64        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	LogoURL     string        `json:"logoUrl"`
	Website     string        `json:"website,omitempty"`
	Category    string        `json:"category,omitempty"`
	Featured    bool          `json:"isFeatured"`
	Order       int           `json:"order"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
