package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/ads-api/internal/domain"
)

// AdvertisementStore defines the interface for advertisement persistence.
// Reads return advertisements with Owner populated from a join.
type AdvertisementStore interface {
	// Create inserts ad and fills in its ID and CreatedAt.
	// Returns ErrUserNotFound if ad.OwnerID does not reference a user.
	Create(ctx context.Context, ad *domain.Advertisement) error

	// GetByID retrieves an advertisement with its owner.
	// Returns ErrAdvertisementNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Advertisement, error)

	// GetByIDForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends. Owner is not populated.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Advertisement, error)

	// List returns up to limit advertisements, newest first, skipping offset.
	List(ctx context.Context, limit, offset int) ([]*domain.Advertisement, error)

	// Count returns the total number of advertisements.
	Count(ctx context.Context) (int, error)

	// Update persists the title and description of ad.
	// Returns ErrAdvertisementNotFound if the row is gone.
	Update(ctx context.Context, ad *domain.Advertisement) error

	// Delete removes the advertisement.
	// Returns ErrAdvertisementNotFound if the row is gone.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new AdvertisementStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AdvertisementStore
}
