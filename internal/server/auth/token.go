package auth

import "github.com/mvasiljevs/taskdesk/internal/common"

// tokenBytes is the entropy of a session token. 32 random bytes hex-encode
// to the 64-character opaque strings stored in the sessions table.
const tokenBytes = 32

// GenerateToken mints a new opaque session token from a cryptographically
// secure random source. Consumers must treat the value as uninterpretable.
func GenerateToken() (string, error) {
	return common.MakeRandHexString(tokenBytes)
}
