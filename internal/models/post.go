package models

import "time"

// Post is a content item owned by one user, carrying its like-set and
// an ordered, most-recent-first comment sequence.
type Post struct {
	ID      string      `json:"id"`
	Owner   UserSummary `json:"user"`
	Content string      `json:"content"`
	Image   string      `json:"image,omitempty"`
	// Likes holds the ids of the users who liked the post.
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a text entry embedded in a post. It is owned by its author,
// not by the post's owner.
type Comment struct {
	ID        string      `json:"id"`
	Author    UserSummary `json:"user"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}
