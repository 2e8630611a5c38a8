package domain

import (
	"context"
	"time"
)

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// KeyVerifier compares a presented API key against a stored hash.
// Implementations may use bcrypt, argon2, etc.
type KeyVerifier interface {
	Compare(hash, key string) error
}

// AuthService exchanges the service API key for a bearer token.
type AuthService interface {
	// IssueToken validates apiKey and returns a signed token with its
	// expiry. Invalid keys fail with ErrUnauthorized.
	IssueToken(ctx context.Context, apiKey string) (token string, expiresAt time.Time, err error)
}
