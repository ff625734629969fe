package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
	"github.com/phrazzld/ads-api/internal/redact"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/phrazzld/ads-api/internal/store"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "bearer"

// unknownUserHash is compared against on logins for usernames that do not
// exist, so both failure paths spend a bcrypt comparison at the default cost.
const unknownUserHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService exchanges credentials for tokens and tokens for users.
type AuthService interface {
	// Login verifies username and password and issues a token.
	// Both an unknown username and a wrong password yield ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Authenticate resolves a bearer token to its user. Invalid or expired
	// tokens fail with the auth package errors; a token whose subject no
	// longer exists fails with domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthServiceImpl implements AuthService.
type AuthServiceImpl struct {
	users      UserService
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	timeFunc   func() time.Time
	logger     *slog.Logger
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	users UserService,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:      users,
		verifier:   verifier,
		jwtService: jwtService,
		timeFunc:   time.Now,
		logger:     logger.With("component", "auth_service"),
	}
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown user")
			_ = s.verifier.Compare(unknownUserHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	issuedAt := s.timeFunc()
	token, err := s.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		log.Error("failed to generate token",
			"error", redact.Error(err),
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{
		Token:     token,
		TokenType: TokenTypeBearer,
		ExpiresAt: issuedAt.Add(s.jwtService.TokenLifetime()).UTC().Truncate(time.Second),
		User:      user,
	}, nil
}

// Authenticate implements AuthService.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwtService.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token subject no longer exists")
			return nil, fmt.Errorf("%w: unknown token subject", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return user, nil
}
