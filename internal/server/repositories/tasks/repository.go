// Package tasks declares the server-side repository contract for task rows.
package tasks

import (
	"context"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
)

// Repository defines operations over task rows. Absent rows map to
// common.ErrorNotFound; driver failures wrap common.ErrorStorageUnavailable.
type Repository interface {
	// Create inserts a new task and returns it with the assigned ID.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetByID fetches a task by primary key.
	GetByID(ctx context.Context, id int64) (*models.Task, error)

	// Update persists the mutable fields of an existing task.
	Update(ctx context.Context, task *models.Task) error

	// ListAll returns every task, newest first.
	ListAll(ctx context.Context) ([]*models.Task, error)

	// ListByAssignee returns tasks assigned to one user, newest first.
	ListByAssignee(ctx context.Context, userID int64) ([]*models.Task, error)
}
