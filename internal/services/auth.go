package services

import (
	"context"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

// tokenSubject is the subject claim on every issued token. The service
// has a single administrative principal.
const tokenSubject = "admin"

type authService struct {
	keys     domain.KeyVerifier
	issuer   domain.TokenIssuer
	keyHash  string
	tokenTTL time.Duration
}

// NewAuthService returns an AuthService that checks presented API keys
// against keyHash and issues bearer tokens with the given TTL.
func NewAuthService(keys domain.KeyVerifier, issuer domain.TokenIssuer, keyHash string, tokenTTL time.Duration) domain.AuthService {
	return &authService{
		keys:     keys,
		issuer:   issuer,
		keyHash:  keyHash,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) IssueToken(ctx context.Context, apiKey string) (string, time.Time, error) {
	if err := s.keys.Compare(s.keyHash, apiKey); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.issuer.Issue(tokenSubject, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return token, expiresAt, nil
}
