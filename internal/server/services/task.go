// This file implements TaskService: gated CRUD over task assignments.
// The owner of a task is its assignee.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

// TaskUpdate carries the optional field changes for an admin task update.
// Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// TaskService provides task operations with the authorization gates applied
// before any read or mutation.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService bound to the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create makes a new task assigned to assigneeID. Admin only; the assignee
// must exist.
func (s *TaskService) Create(ctx context.Context, identity *Identity, title, description string, assigneeID int64) (*models.Task, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, assigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:            title,
		Description:      description,
		AssignedToUserID: assigneeID,
		CreatedByUserID:  identity.ID,
		Status:           models.TaskStatusPending,
	}
	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// Update applies field changes to an existing task. Admin only. Setting the
// status to verified stamps the verification time.
func (s *TaskService) Update(ctx context.Context, identity *Identity, taskID int64, update TaskUpdate) (*models.Task, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, common.ErrorInternal
		}
		task.Status = *update.Status
		if task.Status == models.TaskStatusVerified {
			now := time.Now()
			task.VerifiedAt = &now
		}
	}

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns one task. The assignee or an admin may read it; everyone else
// gets Forbidden without learning anything beyond the task's existence.
func (s *TaskService) Get(ctx context.Context, identity *Identity, taskID int64) (*models.Task, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(identity, task.AssignedToUserID); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all tasks for admins and the caller's own tasks otherwise.
func (s *TaskService) List(ctx context.Context, identity *Identity) ([]*models.Task, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}
	if identity.IsAdmin() {
		return s.repomanager.Tasks(s.db).ListAll(ctx)
	}
	return s.repomanager.Tasks(s.db).ListByAssignee(ctx, identity.ID)
}

// MarkCompleted flags a task as done by its assignee (or an admin) and moves
// it to in_progress for admin verification.
func (s *TaskService) MarkCompleted(ctx context.Context, identity *Identity, taskID int64) (*models.Task, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(identity, task.AssignedToUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	task.IsCompleted = true
	task.Status = models.TaskStatusInProgress
	task.CompletedAt = &now

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
