package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/common"
)

// statusFromError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthenticated),
		errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorAccountBlocked):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, common.ErrorInvalidTarget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrorStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessages hides internal detail: the client sees the category only.
var errorMessages = map[int]string{
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusConflict:            "already exists",
	http.StatusUnprocessableEntity: "invalid target",
	http.StatusServiceUnavailable:  "storage unavailable",
	http.StatusInternalServerError: "internal error",
}

func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	msg := errorMessages[status]

	// blocked accounts are told so explicitly at login
	if errors.Is(err, common.ErrorAccountBlocked) {
		msg = "account blocked"
	}
	if errors.Is(err, common.ErrorInvalidCredentials) {
		msg = "invalid credentials"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
