package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

// TaskHandler handles the task CRUD surface.
type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskRequest is the admin task-creation payload.
type CreateTaskRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	AssignedToUserID int64  `json:"assigned_to_user_id" binding:"required"`
}

// UpdateTaskRequest carries optional field changes; absent fields are kept.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	AssignedToUserID int64  `json:"assigned_to_user_id"`
	CreatedByUserID  int64  `json:"created_by_user_id"`
	Status           string `json:"status"`
	IsCompleted      bool   `json:"is_completed"`
	CompletedAt      string `json:"completed_at,omitempty"`
	VerifiedAt       string `json:"verified_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	r := TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		AssignedToUserID: t.AssignedToUserID,
		CreatedByUserID:  t.CreatedByUserID,
		Status:           string(t.Status),
		IsCompleted:      t.IsCompleted,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		r.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	if t.VerifiedAt != nil {
		r.VerifiedAt = t.VerifiedAt.Format(time.RFC3339)
	}
	return r
}

func toTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBindError(c, err)
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), identityFrom(c), req.Title, req.Description, req.AssignedToUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	update := services.TaskUpdate{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		update.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), identityFrom(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) MarkCompleted(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.MarkCompleted(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}
