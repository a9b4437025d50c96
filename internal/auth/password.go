// Package auth provides password hashing and bearer-token issuance for the
// REST surface.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/talentbridge/internhub/internal/errors"
)

const minPasswordLength = 8

// HashPassword returns a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", errors.New(errors.CodeValidation, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(errors.CodeUnknown, "hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares the stored hash against the supplied password.
func CheckPassword(hash, password string) error {
	if strings.TrimSpace(hash) == "" || password == "" {
		return errors.New(errors.CodeInvalidCredentials, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.New(errors.CodeInvalidCredentials, "invalid email or password")
	}
	return nil
}
