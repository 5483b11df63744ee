package model

import "time"

// Media types derived from the upload's MIME prefix.
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

// Media represents a row in the `media` table: metadata for one uploaded
// file under the uploads directory. A record marked InUse cannot be deleted
// until the flag is cleared.
type Media struct {
	ID         uint64        `json:"id"`
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Type       string        `json:"type"`
	MimeType   string        `json:"mimeType"`
	Size       int64         `json:"size"`
	Width      int           `json:"width,omitempty"`
	Height     int           `json:"height,omitempty"`
	Alt        LocalizedText `json:"alt"`
	Tags       []string      `json:"tags,omitempty"`
	UploaderID uint64        `json:"uploaderId,omitempty"`
	InUse      bool          `json:"isUsed"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
