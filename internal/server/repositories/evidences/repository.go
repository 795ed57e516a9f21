// Package evidences declares the server-side repository contract for
// completion-evidence metadata. The file bodies live in object storage.
package evidences

import (
	"context"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Repository defines operations over evidence metadata rows.
type Repository interface {
	// Create inserts a new evidence row and returns it with the assigned ID.
	Create(ctx context.Context, evidence *models.Evidence) (*models.Evidence, error)

	// ListByTask returns evidence rows for one task, oldest first.
	ListByTask(ctx context.Context, taskID int64) ([]*models.Evidence, error)
}
