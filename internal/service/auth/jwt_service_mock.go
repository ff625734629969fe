package auth

import (
	"context"
	"time"
)

// MockJWTService is a configurable JWTService for handler and middleware tests.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, subject string, ttl time.Duration) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed results used when the corresponding Func is nil.
	Token           string
	TokenError      error
	Claims          *Claims
	ValidationError error
	Lifetime        time.Duration
}

var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService returns a mock that issues "mock-jwt-token" and accepts
// any token as belonging to subject.
func NewMockJWTService(subject string) *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token:    "mock-jwt-token",
		Lifetime: 30 * time.Minute,
		Claims: &Claims{
			Subject:   subject,
			IssuedAt:  now,
			ExpiresAt: now.Add(30 * time.Minute),
			ID:        "mock-jti",
		},
	}
}

// GenerateToken implements JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (string, error) {
	return m.GenerateTokenWithLifetime(ctx, subject, m.Lifetime)
}

// GenerateTokenWithLifetime implements JWTService.
func (m *MockJWTService) GenerateTokenWithLifetime(
	ctx context.Context,
	subject string,
	ttl time.Duration,
) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, subject, ttl)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	return m.Claims, m.ValidationError
}

// TokenLifetime implements JWTService.
func (m *MockJWTService) TokenLifetime() time.Duration {
	return m.Lifetime
}
