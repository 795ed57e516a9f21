package models

import "time"

// Message is a one-way note from an admin to a user. Listing is scoped to
// the recipient; only admins send.
type Message struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}
