// This file implements UserService: registration, login, logout, and
// resolving a session token to a user on every authenticated request.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mvasiljevs/taskdesk/internal/common"
	"github.com/mvasiljevs/taskdesk/internal/dbx"
	"github.com/mvasiljevs/taskdesk/internal/server/auth"
	"github.com/mvasiljevs/taskdesk/internal/server/config"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Register: create a user and establish its first session atomically
//   - Login: verify credentials and mint a session token
//   - Resolve: map an inbound session token to a user (lazy expiry)
//   - Logout: revoke a session token
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a new user and logs it in. The role is always forced to
// RoleUser; callers have no way to request anything else. User row and first
// session are written in one transaction, so registration is atomic from the
// caller's perspective. Returns the user plus a fresh session token.
func (s *UserService) Register(ctx context.Context, username, password, name, email string) (*models.User, string, error) {

	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, username); err == nil {
		return nil, "", common.ErrorDuplicateUser
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", err
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		Name:         name,
		Email:        email,
		Role:         models.RoleUser,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return s.repomanager.Sessions(tx).Create(ctx, user.ID, token, time.Now().Add(s.sessionValidity))
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUser) {
			// lost the race against a concurrent registration; the unique
			// index is the authority
			return nil, "", common.ErrorDuplicateUser
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	return user, token, nil
}

// Login verifies the credentials and, on success, mints a new session token.
// Unknown username and wrong password are indistinguishable to the caller;
// a blocked account is reported as such only after the user row was found.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", err
	}

	if user.IsBlocked {
		return nil, "", common.ErrorAccountBlocked
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	if err := s.repomanager.Sessions(s.db).Create(ctx, user.ID, token, time.Now().Add(s.sessionValidity)); err != nil {
		return nil, "", err
	}

	if err := s.repomanager.Users(s.db).UpdateLastSignedIn(ctx, user.ID); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Resolve maps an inbound session token to its user. It returns (nil, nil)
// when the caller has no identity: empty token, unknown token, expired
// session, missing user, or blocked user. An expired-but-found session is
// deleted on the spot (lazy cleanup); that is the only side effect. Because
// the blocked flag is re-checked here, a block takes effect on the target's
// very next request regardless of outstanding sessions.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, nil
	}

	sessionRepo := s.repomanager.Sessions(s.db)

	session, err := sessionRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := sessionRepo.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, nil
	}

	return user, nil
}

// Logout deletes the presented session. Unknown or empty tokens are not an
// error, so logout is idempotent.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repomanager.Sessions(s.db).Delete(ctx, token)
}
