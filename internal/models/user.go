package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	ProfilePhoto string    `json:"profilePhoto"`
	Bio          string    `json:"bio"`
	Skills       []string  `json:"skills"`
	GitHub       string    `json:"github"`
	LinkedIn     string    `json:"linkedin"`
	// Connections holds the joined summaries of the accounts this user is
	// connected to. Only populated on single-user reads.
	Connections []UserSummary `json:"connections,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// UserSummary is the denormalized slice of a user embedded in other views.
type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProfilePhoto string `json:"profilePhoto"`
}

// ProfileUpdate carries a partial profile change. A nil field means
// "leave unchanged"; a non-nil field overwrites, even with an empty value.
type ProfileUpdate struct {
	Name         *string   `json:"name"`
	Bio          *string   `json:"bio"`
	Skills       *[]string `json:"skills"`
	GitHub       *string   `json:"github"`
	LinkedIn     *string   `json:"linkedin"`
	ProfilePhoto *string   `json:"profilePhoto"`
}
