package auth

import (
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/errors"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash must not equal the password")
	}
	if err := CheckPassword(hash, "correct-horse-battery"); err != nil {
		t.Fatalf("check password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.IsCode(err, errors.CodeInvalidCredentials) {
		t.Fatalf("wrong password code = %v, want %v", errors.GetCode(err), errors.CodeInvalidCredentials)
	}
}

func TestHashPasswordRejectsShortPassword(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("short"); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("short password code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
}

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	issuer.clock = func() time.Time { return now }

	token, err := issuer.Issue("stu-1", "priya@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != "stu-1" {
		t.Fatalf("user id = %q, want stu-1", claims.UserID)
	}
	if claims.Email != "priya@example.com" {
		t.Fatalf("email = %q, want priya@example.com", claims.Email)
	}
	if !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires at = %v, want %v", claims.ExpiresAt, now.Add(time.Hour))
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	issued := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	issuer.clock = func() time.Time { return issued }

	token, err := issuer.Issue("stu-1", "priya@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	issuer.clock = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := issuer.Verify(token); !errors.IsCode(err, errors.CodeTokenInvalid) {
		t.Fatalf("expired token code = %v, want %v", errors.GetCode(err), errors.CodeTokenInvalid)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenIssuer("secret-one", time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	token, err := issuer.Issue("stu-1", "priya@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	other, err := NewTokenIssuer("secret-two", time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	if _, err := other.Verify(token); !errors.IsCode(err, errors.CodeTokenInvalid) {
		t.Fatalf("wrong secret code = %v, want %v", errors.GetCode(err), errors.CodeTokenInvalid)
	}
}

func TestNewTokenIssuerValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer(" ", time.Hour); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("missing secret code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
	if _, err := NewTokenIssuer("secret", 0); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("zero ttl code = %v, want %v", errors.GetCode(err), errors.CodeValidation)
	}
}
