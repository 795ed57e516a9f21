// Package auth contains the credential-hashing and session-token leaves of
// the authentication subsystem. Both are pure functions over their inputs.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps verification in the tens-of-milliseconds range on
// commodity hardware, which is the point of the scheme.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of the plaintext. The salt is
// random, so hashing the same plaintext twice yields different digests.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext matches the digest. Malformed
// digests are not an error; they simply do not verify.
func VerifyPassword(password string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
