package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/logging"
	"github.com/mvasiljevs/taskdesk/internal/server/services"
)

const identityKey = "taskdesk.identity"

// Authenticate resolves the session cookie to an identity and stores it in
// the request context. It never rejects: anonymous requests pass through
// with no identity, and each operation decides what that means.
func Authenticate(users *services.UserService, cookies *CookieHelper, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)

		user, err := users.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Error(c.Request.Context(), "session resolve failed", "error", err.Error())
			respondError(c, err)
			return
		}

		if identity := services.IdentityFromUser(user); identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// identityFrom returns the caller's identity, or nil for anonymous requests.
func identityFrom(c *gin.Context) *services.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*services.Identity)
	if !ok {
		return nil
	}
	return identity
}
