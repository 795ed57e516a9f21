// Package users declares the server-side repository contract for identity
// records in persistent storage.
package users

import (
	"context"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Repository defines operations over user rows. Implementations return
// common.ErrorNotFound for absent rows, common.ErrorDuplicateUser for a
// username collision, and wrap driver failures in
// common.ErrorStorageUnavailable.
type Repository interface {
	// Create inserts a new user and returns it with the assigned ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername performs an exact-match lookup by unique username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID fetches a user by primary key.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateLastSignedIn stamps the last-signed-in timestamp with now.
	UpdateLastSignedIn(ctx context.Context, id int64) error

	// SetBlockStatus flips the blocked flag.
	SetBlockStatus(ctx context.Context, id int64, blocked bool) error

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*models.User, error)
}
