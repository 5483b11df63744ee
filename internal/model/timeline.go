package model

import "time"

// TimelineEntry represents a row in the `timeline_entries` table: one
// milestone of the company history page. Default read order is ascending
// by year.
type TimelineEntry struct {
	ID          uint64        `json:"id"`
	Year        int           `json:"year"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Icon        string        `json:"icon,omitempty"`
	Color       string        `json:"color,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Featured    bool          `json:"isFeatured"`
	Order       int           `json:"order"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// LocalizedTimelineEntry is the locale-filtered projection returned by the
// public timeline list when ?locale= is supplied.
type LocalizedTimelineEntry struct {
	ID          uint64 `json:"id"`
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Featured    bool   `json:"isFeatured"`
	Order       int    `json:"order"`
}

// Localize projects the entry onto a single locale with English fallback.
func (e TimelineEntry) Localize(locale string) LocalizedTimelineEntry {
	return LocalizedTimelineEntry{
		ID:          e.ID,
		Year:        e.Year,
		Title:       e.Title.Resolve(locale),
		Description: e.Description.Resolve(locale),
		Icon:        e.Icon,
		Color:       e.Color,
		ImageURL:    e.ImageURL,
		Featured:    e.Featured,
		Order:       e.Order,
	}
}
