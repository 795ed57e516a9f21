// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the closed set of user roles. There is no self-promotion path:
// registration always produces RoleUser and the role is immutable afterwards.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an identity record. Username is globally unique. Users are never
// hard-deleted; blocking is the only way to retire an account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Role         Role
	IsBlocked    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}
