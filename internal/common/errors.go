// Package common defines shared constants and sentinel errors used across
// taskdesk components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound           = errors.New("not found")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// Authentication errors.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorAccountBlocked     = errors.New("account blocked")
	ErrorDuplicateUser      = errors.New("user already exists")

	// Authorization errors. Unauthenticated means no identity at all;
	// Forbidden means the identity is known but not allowed.
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")

	// InvalidTarget rejects admin operations aimed at another admin.
	ErrorInvalidTarget = errors.New("invalid target")

	// Generic/internal flow control.
	ErrorInternal = errors.New("internal error")
)
