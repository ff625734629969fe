package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for subject using the configured lifetime.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// GenerateTokenWithLifetime creates a signed token that expires ttl after now.
	// A zero ttl yields a token that is already expired.
	GenerateTokenWithLifetime(ctx context.Context, subject string, ttl time.Duration) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns its claims. Fails with ErrInvalidToken or ErrExpiredToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime is the lifetime used by GenerateToken.
	TokenLifetime() time.Duration
}

// Claims is the verified payload of a token.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
