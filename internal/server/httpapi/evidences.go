package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

// maxEvidenceSize caps a single uploaded file at 32 MiB.
const maxEvidenceSize = 32 << 20

// EvidenceHandler handles evidence upload and listing for a task.
type EvidenceHandler struct {
	evidences *services.EvidenceService
}

func NewEvidenceHandler(evidences *services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidences: evidences}
}

// EvidenceResponse is the public view of an evidence record. FileURL is a
// short-lived presigned download link.
type EvidenceResponse struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	UserID    int64  `json:"user_id"`
	FileName  string `json:"file_name"`
	FileType  string `json:"file_type"`
	FileSize  int64  `json:"file_size"`
	FileURL   string `json:"file_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toEvidenceResponse(e *models.Evidence) EvidenceResponse {
	return EvidenceResponse{
		ID:        e.ID,
		TaskID:    e.TaskID,
		UserID:    e.UserID,
		FileName:  e.FileName,
		FileType:  e.FileType,
		FileSize:  e.FileSize,
		FileURL:   e.FileURL,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

// Upload accepts a multipart form with a single "file" field.
func (h *EvidenceHandler) Upload(c *gin.Context) {
	taskID, ok := idParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, err)
		return
	}
	if fileHeader.Size > maxEvidenceSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxEvidenceSize))
	if err != nil {
		respondBindError(c, err)
		return
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	evidence, err := h.evidences.Upload(c.Request.Context(), identityFrom(c), taskID, fileHeader.Filename, fileType, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEvidenceResponse(evidence))
}

func (h *EvidenceHandler) List(c *gin.Context) {
	taskID, ok := idParam(c)
	if !ok {
		return
	}

	evidences, err := h.evidences.List(c.Request.Context(), identityFrom(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]EvidenceResponse, 0, len(evidences))
	for _, e := range evidences {
		out = append(out, toEvidenceResponse(e))
	}
	c.JSON(http.StatusOK, out)
}
