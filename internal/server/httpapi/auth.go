package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/logging"
	"github.com/mvasiljevs/taskdesk/internal/server/models"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

// AuthHandler handles registration, login, logout, and identity lookup.
type AuthHandler struct {
	users   *services.UserService
	cookies *CookieHelper
	logger  logging.Logger
}

func NewAuthHandler(users *services.UserService, cookies *CookieHelper, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, cookies: cookies, logger: logger}
}

// RegisterRequest is the registration payload. The display name and email
// are optional.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	IsBlocked    bool   `json:"is_blocked"`
	CreatedAt    string `json:"created_at"`
	LastSignedIn string `json:"last_signed_in,omitempty"`
}

func toUserResponse(u *models.User) UserResponse {
	r := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if !u.LastSignedIn.IsZero() {
		r.LastSignedIn = u.LastSignedIn.Format(time.RFC3339)
	}
	return r
}

// Register creates an account and logs it in, setting the session cookie.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	h.cookies.Set(c, token)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "login rejected", "username", req.Username)
		respondError(c, err)
		return
	}

	h.cookies.Set(c, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout revokes the presented session and clears the cookie. Always 200:
// logging out without a session is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), h.cookies.Token(c)); err != nil {
		respondError(c, err)
		return
	}
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the caller's identity, or a null user for anonymous requests.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"role":     string(identity.Role),
	}})
}
