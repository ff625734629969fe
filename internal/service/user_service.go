package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
	"github.com/phrazzld/ads-api/internal/redact"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/phrazzld/ads-api/internal/store"
)

// UserService provides registration and lookup of user accounts.
type UserService interface {
	// Register validates the input, rejects a taken username or email with
	// store.ErrUserExists, hashes the password and stores the user.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore    store.UserStore
	transactor   store.Transactor
	hasher       auth.PasswordHasher
	queryTimeout time.Duration
	logger       *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	transactor store.Transactor,
	hasher auth.PasswordHasher,
	queryTimeout time.Duration,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:    userStore,
		transactor:   transactor,
		hasher:       hasher,
		queryTimeout: queryTimeout,
		logger:       logger.With("component", "user_service"),
	}
}

// Register implements UserService.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		log.Debug("registration rejected by validation", "error", err)
		return nil, err
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	var user *domain.User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		exists, err := txStore.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return fmt.Errorf("failed to check existing users: %w", err)
		}
		if exists {
			return store.ErrUserExists
		}

		hash, err := s.hasher.HashPassword(password)
		if err != nil {
			return err
		}

		user, err = domain.NewUser(username, email, hash)
		if err != nil {
			return err
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			log.Debug("attempted to register existing username or email",
				"username", username)
			return nil, store.ErrUserExists
		}
		log.Error("failed to register user",
			"error", redact.Error(err),
			"username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered successfully",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// GetByUsername implements UserService.
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		s.logLookupError(ctx, err, "username", username)
		return nil, fmt.Errorf("failed to retrieve user by username: %w", err)
	}
	return user, nil
}

// GetByID implements UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		s.logLookupError(ctx, err, "user_id", id)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *UserServiceImpl) logLookupError(ctx context.Context, err error, key string, value any) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug("user not found", key, value)
		return
	}
	log.Error("failed to retrieve user", "error", redact.Error(err), key, value)
}

// validateRegistration reports every invalid field at once.
func validateRegistration(username, email, password string) error {
	var errs domain.ValidationErrors
	if err := domain.ValidateUsername(username); err != nil {
		errs = append(errs, err)
	}
	if err := domain.ValidateEmail(email); err != nil {
		errs = append(errs, err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		errs = append(errs, err)
	}
	return errs.OrNil()
}
