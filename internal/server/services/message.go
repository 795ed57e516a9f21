// This file implements MessageService: admin-to-user messaging.
package services

import (
	"context"
	"database/sql"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

// MessageService provides messaging operations. Sending is admin-only;
// listing and marking read are scoped to the recipient.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewMessageService constructs a MessageService bound to the given repositories.
func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// List returns the caller's inbox, newest first.
func (s *MessageService) List(ctx context.Context, identity *Identity) ([]*models.Message, error) {
	if identity == nil {
		return nil, common.ErrorUnauthenticated
	}
	return s.repomanager.Messages(s.db).ListByRecipient(ctx, identity.ID)
}

// Send delivers a message to one user. Admin only; the recipient must exist.
func (s *MessageService) Send(ctx context.Context, identity *Identity, toUserID int64, content string) (*models.Message, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, toUserID); err != nil {
		return nil, err
	}

	message := &models.Message{
		FromUserID: identity.ID,
		ToUserID:   toUserID,
		Content:    content,
	}
	return s.repomanager.Messages(s.db).Create(ctx, message)
}

// MarkRead flags a message as read. Only its recipient or an admin may do so.
func (s *MessageService) MarkRead(ctx context.Context, identity *Identity, messageID int64) error {
	if identity == nil {
		return common.ErrorUnauthenticated
	}

	repo := s.repomanager.Messages(s.db)

	message, err := repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := RequireOwnerOrAdmin(identity, message.ToUserID); err != nil {
		return err
	}

	return repo.MarkRead(ctx, messageID)
}
