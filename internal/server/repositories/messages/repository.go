// Package messages declares the server-side repository contract for
// admin-to-user messages.
package messages

import (
	"context"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Repository defines operations over message rows.
type Repository interface {
	// Create inserts a new message and returns it with the assigned ID.
	Create(ctx context.Context, message *models.Message) (*models.Message, error)

	// GetByID fetches a message by primary key.
	GetByID(ctx context.Context, id int64) (*models.Message, error)

	// ListByRecipient returns messages addressed to one user, newest first.
	ListByRecipient(ctx context.Context, userID int64) ([]*models.Message, error)

	// MarkRead sets the read flag on a message.
	MarkRead(ctx context.Context, id int64) error
}
