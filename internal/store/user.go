package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/ads-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Users are immutable once created, so there is no Update or Delete.
type UserStore interface {
	// Create inserts user and fills in its ID and CreatedAt.
	// Returns ErrUserExists if the username or email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsernameOrEmail reports whether any user holds either value,
	// checked in a single query.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
