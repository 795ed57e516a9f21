package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

// MessageHandler handles the messaging surface.
type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// SendMessageRequest is the admin message payload.
type SendMessageRequest struct {
	ToUserID int64  `json:"to_user_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// MessageResponse is the public view of a message.
type MessageResponse struct {
	ID         int64  `json:"id"`
	FromUserID int64  `json:"from_user_id"`
	ToUserID   int64  `json:"to_user_id"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

func toMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), identityFrom(c), req.ToUserID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.messages.MarkRead(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
