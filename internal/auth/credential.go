// Package auth provides the write-only credential capability. Plaintext
// secrets exist only as arguments: Hash derives the stored form and Verify
// compares against it. There is no read accessor for a stored credential.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyCredential rejects registration with a blank secret.
var ErrEmptyCredential = errors.New("credential must not be empty")

// Credentials hashes and verifies secrets with bcrypt.
type Credentials struct {
	cost int
}

// NewCredentials returns a capability using the default bcrypt cost.
func NewCredentials() *Credentials {
	return &Credentials{cost: bcrypt.DefaultCost}
}

// Hash derives the storable hash from a plaintext secret.
func (c *Credentials) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches a stored hash.
func (c *Credentials) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
