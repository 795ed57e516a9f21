package models

import "time"

// Session is proof of a prior successful authentication: an opaque token
// bound to one user with an absolute expiry. Expired sessions are deleted
// lazily on first access, never swept in the background.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
