package models

import "time"

// Activity records a user-visible action in the system.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // e.g. "user.register", "post.create"
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"` // Nullable for system entries
	CreatedAt time.Time `json:"createdAt"`
}
