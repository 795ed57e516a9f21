// Package httpapi exposes the application over HTTP with gin. Session
// tokens travel only in an http-only cookie; bodies are JSON except the
// multipart evidence upload.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/server/config"
)

// CookieHelper reads and writes the session cookie. The token is opaque to
// the browser; all attributes come from server config except http-only,
// which is unconditional.
type CookieHelper struct {
	name     string
	secure   bool
	validity time.Duration
}

// NewCookieHelper builds a helper from server config.
func NewCookieHelper(cfg *config.Config) *CookieHelper {
	return &CookieHelper{
		name:     cfg.SessionCookieName,
		secure:   cfg.SessionCookieSecure,
		validity: cfg.SessionValidityDuration,
	}
}

// Set writes the session cookie with max-age equal to the session validity.
func (h *CookieHelper) Set(c *gin.Context, token string) {
	h.setCookie(c, token, int(h.validity.Seconds()))
}

// Clear expires the session cookie immediately.
func (h *CookieHelper) Clear(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// Token returns the session token from the request cookie, or "" if absent.
func (h *CookieHelper) Token(c *gin.Context) string {
	token, err := c.Cookie(h.name)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.name,
		value,
		maxAge,
		"/",
		"",
		h.secure,
		true, // httpOnly, always: the token must stay out of script reach
	)
}
