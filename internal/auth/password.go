// Package auth provides password hashing and token issuance for the
// knowledge base API.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// PasswordHasher hashes and verifies passwords with bcrypt. Cost and
// the minimum length come from configuration.
type PasswordHasher struct {
	cost      int
	minLength int
}

func NewPasswordHasher(cost, minLength int) *PasswordHasher {
	return &PasswordHasher{cost: cost, minLength: minLength}
}

// Hash validates and hashes a plaintext password. Surrounding
// whitespace is stripped before the length check so a padded password
// cannot satisfy the minimum.
func (h *PasswordHasher) Hash(password string) (string, error) {
	password = strings.TrimSpace(password)
	if len(password) < h.minLength {
		return "", fmt.Errorf("password must be at least %d characters", h.minLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Compare checks a plaintext password against a stored hash
func (h *PasswordHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(password))); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
