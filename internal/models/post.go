package models

import "time"

// Post is a short text entry owned by exactly one user. The owner is set at
// creation and never reassigned.
type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	OwnerID   int64     `json:"-"`
	CreatedAt time.Time `json:"-"`
}
