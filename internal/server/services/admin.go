// This file implements AdminService: user administration operations that
// are reserved for the admin role.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/server/auth"
	"github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

// AdminService provides user administration: listing, block/unblock, and
// impersonation. Every operation is role-gated; admins can never be the
// target of block, unblock, or impersonate.
type AdminService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewAdminService constructs an AdminService using repositories and server config.
func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AdminService {
	return &AdminService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// ListUsers returns all users. Admin only.
func (s *AdminService) ListUsers(ctx context.Context, identity *Identity) ([]*models.User, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx)
}

// Block sets the blocked flag on a user. The target's outstanding sessions
// stay in the table but stop resolving on their next request.
func (s *AdminService) Block(ctx context.Context, identity *Identity, targetID int64) error {
	return s.setBlockStatus(ctx, identity, targetID, true)
}

// Unblock clears the blocked flag on a user.
func (s *AdminService) Unblock(ctx context.Context, identity *Identity, targetID int64) error {
	return s.setBlockStatus(ctx, identity, targetID, false)
}

func (s *AdminService) setBlockStatus(ctx context.Context, identity *Identity, targetID int64, blocked bool) error {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return err
	}

	target, err := s.repomanager.Users(s.db).GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		return common.ErrorInvalidTarget
	}

	return s.repomanager.Users(s.db).SetBlockStatus(ctx, targetID, blocked)
}

// Impersonate mints a session for the target user without verifying its
// credentials, using the same token-generation and expiry rules as a normal
// login. Admin only; targeting another admin or a missing user is rejected
// before any session is written.
func (s *AdminService) Impersonate(ctx context.Context, identity *Identity, targetID int64) (*models.User, string, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, "", err
	}

	target, err := s.repomanager.Users(s.db).GetByID(ctx, targetID)
	if err != nil {
		return nil, "", err
	}
	if target.Role == models.RoleAdmin {
		return nil, "", common.ErrorInvalidTarget
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	if err := s.repomanager.Sessions(s.db).Create(ctx, target.ID, token, time.Now().Add(s.sessionValidity)); err != nil {
		return nil, "", err
	}

	return target, token, nil
}
