package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentbridge/internhub/internal/errors"
)

const tokenIssuer = "internhub"

// Claims captures the validated identity carried by a bearer token.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// tokenClaims is the internal claims type used for JWT signing and parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewTokenIssuer creates a token issuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New(errors.CodeValidation, "token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New(errors.CodeValidation, "token ttl must be positive")
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  time.Now,
	}, nil
}

// Issue signs a token for the user.
func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	if t == nil {
		return "", errors.New(errors.CodeUnknown, "token issuer is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New(errors.CodeValidation, "user id is required")
	}

	now := t.clock().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(errors.CodeUnknown, "sign token", err)
	}
	return token, nil
}

// Verify parses the token and validates its signature, issuer, and expiry.
func (t *TokenIssuer) Verify(token string) (Claims, error) {
	if t == nil {
		return Claims{}, errors.New(errors.CodeUnknown, "token issuer is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, errors.New(errors.CodeTokenInvalid, "token is required")
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return t.clock().UTC() }),
	)
	if err != nil {
		return Claims{}, errors.Wrap(errors.CodeTokenInvalid, "invalid token", err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, errors.New(errors.CodeTokenInvalid, "token subject is required")
	}
	return Claims{
		UserID:    parsed.Subject,
		Email:     parsed.Email,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}
