package models

import "time"

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusVerified   TaskStatus = "verified"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusVerified:
		return true
	}
	return false
}

// Task is an assignment created by an admin for one user. The assignee
// (AssignedToUserID) is the owner for authorization purposes.
type Task struct {
	ID               int64
	Title            string
	Description      string
	AssignedToUserID int64
	CreatedByUserID  int64
	Status           TaskStatus
	IsCompleted      bool
	CompletedAt      *time.Time
	VerifiedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
