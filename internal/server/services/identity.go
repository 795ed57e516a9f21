// Package services contains server-side business logic. This file defines
// the authenticated Identity and the two authorization gates applied to
// every protected operation.
package services

import (
	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Identity is the user resolved from a valid session for the duration of
// one request. It is threaded explicitly through every operation call; a
// nil *Identity means the caller is unauthenticated. It is never inferred
// from ambient state.
type Identity struct {
	ID       int64
	Username string
	Role     models.Role
}

// IdentityFromUser derives the request identity from a resolved user row.
// Returns nil for a nil user, so it can be chained after session resolution.
func IdentityFromUser(u *models.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// IsAdmin reports whether the identity exists and carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// RequireRole is the role gate: the caller must be authenticated and carry
// exactly the required role. An absent identity yields ErrorUnauthenticated,
// a mismatched role ErrorForbidden.
func RequireRole(identity *Identity, role models.Role) error {
	if identity == nil {
		return common.ErrorUnauthenticated
	}
	if identity.Role != role {
		return common.ErrorForbidden
	}
	return nil
}

// RequireOwnerOrAdmin is the ownership gate: the caller must own the
// resource or be an admin. Gates run before any mutation, so a rejected
// operation never has partial side effects.
func RequireOwnerOrAdmin(identity *Identity, ownerID int64) error {
	if identity == nil {
		return common.ErrorUnauthenticated
	}
	if identity.ID == ownerID || identity.Role == models.RoleAdmin {
		return nil
	}
	return common.ErrorForbidden
}
