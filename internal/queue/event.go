// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue name for content-change notifications.
const ContentChangedQueue = "content.changed"

// Actions carried by ContentChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionToggled = "toggled"
)

// ContentChangedEvent is published after every successful admin write. It
// carries enough for downstream consumers (cache invalidation, audit
// trails, webhook fan-out) without querying the primary database.
type ContentChangedEvent struct {
	Resource string `json:"resource"` // projects, partners, clients, timeline, content, media
	ID       uint64 `json:"id"`
	Action   string `json:"action"`
	Actor    uint64 `json:"actor,omitempty"` // user ID of the admin who made the change
	At       string `json:"at"`              // RFC3339 UTC timestamp
}
