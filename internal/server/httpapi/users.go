package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/logging"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

// UserAdminHandler handles the admin-only user management surface.
type UserAdminHandler struct {
	admin   *services.AdminService
	cookies *CookieHelper
	logger  logging.Logger
}

func NewUserAdminHandler(admin *services.AdminService, cookies *CookieHelper, logger logging.Logger) *UserAdminHandler {
	return &UserAdminHandler{admin: admin, cookies: cookies, logger: logger}
}

func (h *UserAdminHandler) List(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserAdminHandler) Block(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.admin.Block(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info(c.Request.Context(), "user blocked", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "blocked"})
}

func (h *UserAdminHandler) Unblock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.admin.Unblock(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info(c.Request.Context(), "user unblocked", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "unblocked"})
}

// Impersonate replaces the caller's session cookie with one minted for the
// target user. The admin's own session stays valid server-side; only the
// browser switches identity.
func (h *UserAdminHandler) Impersonate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	identity := identityFrom(c)
	target, token, err := h.admin.Impersonate(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "impersonation started",
		"admin_id", identity.ID, "target_id", target.ID)
	h.cookies.Set(c, token)
	c.JSON(http.StatusOK, toUserResponse(target))
}
