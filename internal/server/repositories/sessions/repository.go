// Package sessions declares the server-side repository contract for session
// tokens in persistent storage.
package sessions

import (
	"context"
	"time"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// sessions. Tokens are generated by the caller; the store only persists them.
type Repository interface {
	// Create stores a new session for userID with the given absolute expiry.
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// Find looks up a session by its opaque token string. Implementations
	// return common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by its token string. Deleting a non-existent
	// token is not an error.
	Delete(ctx context.Context, token string) error
}
