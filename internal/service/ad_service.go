package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
	"github.com/phrazzld/ads-api/internal/redact"
	"github.com/phrazzld/ads-api/internal/store"
)

// AdvertisementService manages advertisements and enforces ownership.
type AdvertisementService interface {
	// Create stores a new advertisement owned by ownerID and returns it with
	// the owner populated.
	Create(ctx context.Context, ownerID int64, title, description string) (*domain.Advertisement, error)

	// Get returns one advertisement with its owner.
	Get(ctx context.Context, id int64) (*domain.Advertisement, error)

	// List returns one page of advertisements, newest first.
	List(ctx context.Context, page, perPage int) (domain.Page[*domain.Advertisement], error)

	// Update applies the fields present in upd. Only the owner may update.
	Update(
		ctx context.Context,
		id, requesterID int64,
		upd domain.AdvertisementUpdate,
	) (*domain.Advertisement, error)

	// Delete removes the advertisement. Only the owner may delete.
	Delete(ctx context.Context, id, requesterID int64) error
}

// AdvertisementServiceConfig holds the tunables of AdvertisementService.
type AdvertisementServiceConfig struct {
	QueryTimeout time.Duration
	MaxPerPage   int
}

// AdvertisementServiceImpl implements AdvertisementService.
type AdvertisementServiceImpl struct {
	ads        store.AdvertisementStore
	users      store.UserStore
	transactor store.Transactor
	cfg        AdvertisementServiceConfig
	logger     *slog.Logger
}

var _ AdvertisementService = (*AdvertisementServiceImpl)(nil)

// NewAdvertisementService creates a new AdvertisementService.
func NewAdvertisementService(
	ads store.AdvertisementStore,
	users store.UserStore,
	transactor store.Transactor,
	cfg AdvertisementServiceConfig,
	logger *slog.Logger,
) *AdvertisementServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxPerPage <= 0 || cfg.MaxPerPage > domain.MaxPerPage {
		cfg.MaxPerPage = domain.MaxPerPage
	}
	return &AdvertisementServiceImpl{
		ads:        ads,
		users:      users,
		transactor: transactor,
		cfg:        cfg,
		logger:     logger.With("component", "advertisement_service"),
	}
}

// Create implements AdvertisementService.
func (s *AdvertisementServiceImpl) Create(
	ctx context.Context,
	ownerID int64,
	title, description string,
) (*domain.Advertisement, error) {
	ad, err := domain.NewAdvertisement(ownerID, title, description)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withQueryTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		owner, err := s.users.WithTx(tx).GetByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if err := s.ads.WithTx(tx).Create(ctx, ad); err != nil {
			return err
		}
		ad.Owner = owner
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "create", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("advertisement created",
		"advertisement_id", ad.ID,
		"owner_id", ownerID)
	return ad, nil
}

// Get implements AdvertisementService.
func (s *AdvertisementServiceImpl) Get(ctx context.Context, id int64) (*domain.Advertisement, error) {
	ctx, cancel := withQueryTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	var ad *domain.Advertisement
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		ad, err = s.ads.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "get", err, "advertisement_id", id)
		return nil, fmt.Errorf("failed to get advertisement: %w", err)
	}
	return ad, nil
}

// List implements AdvertisementService. The count and the page are read in
// one transaction.
func (s *AdvertisementServiceImpl) List(
	ctx context.Context,
	page, perPage int,
) (domain.Page[*domain.Advertisement], error) {
	req, err := domain.NewPageRequest(page, perPage, s.cfg.MaxPerPage)
	if err != nil {
		return domain.Page[*domain.Advertisement]{}, err
	}

	ctx, cancel := withQueryTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	var (
		items []*domain.Advertisement
		total int
	)
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.ads.WithTx(tx)

		var err error
		if total, err = txStore.Count(ctx); err != nil {
			return err
		}
		if req.Offset() >= total {
			return nil
		}
		items, err = txStore.List(ctx, req.Limit(), req.Offset())
		return err
	})
	if err != nil {
		s.logFailure(ctx, "list", err, "page", page)
		return domain.Page[*domain.Advertisement]{}, fmt.Errorf("failed to list advertisements: %w", err)
	}

	return domain.NewPage(items, total, req), nil
}

// Update implements AdvertisementService.
func (s *AdvertisementServiceImpl) Update(
	ctx context.Context,
	id, requesterID int64,
	upd domain.AdvertisementUpdate,
) (*domain.Advertisement, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withQueryTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	var ad *domain.Advertisement
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.ads.WithTx(tx)

		current, err := s.lockOwned(ctx, txStore, id, requesterID)
		if err != nil {
			return err
		}

		if !upd.IsEmpty() {
			if err := current.Apply(upd); err != nil {
				return err
			}
			if err := txStore.Update(ctx, current); err != nil {
				return err
			}
		}

		ad, err = txStore.GetByID(ctx, id)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "update", err, "advertisement_id", id)
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("advertisement updated",
		"advertisement_id", id,
		"owner_id", requesterID)
	return ad, nil
}

// Delete implements AdvertisementService.
func (s *AdvertisementServiceImpl) Delete(ctx context.Context, id, requesterID int64) error {
	ctx, cancel := withQueryTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.ads.WithTx(tx)

		if _, err := s.lockOwned(ctx, txStore, id, requesterID); err != nil {
			return err
		}
		return txStore.Delete(ctx, id)
	})
	if err != nil {
		s.logFailure(ctx, "delete", err, "advertisement_id", id)
		return fmt.Errorf("failed to delete advertisement: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("advertisement deleted",
		"advertisement_id", id,
		"owner_id", requesterID)
	return nil
}

// lockOwned locks the advertisement row and checks that requesterID owns it.
func (s *AdvertisementServiceImpl) lockOwned(
	ctx context.Context,
	txStore store.AdvertisementStore,
	id, requesterID int64,
) (*domain.Advertisement, error) {
	ad, err := txStore.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad.OwnerID != requesterID {
		return nil, ErrNotOwned
	}
	return ad, nil
}

// logFailure logs expected outcomes at debug level and everything else as an error.
func (s *AdvertisementServiceImpl) logFailure(ctx context.Context, op string, err error, key string, value any) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	switch {
	case store.IsNotFoundError(err),
		errors.Is(err, ErrNotOwned),
		errors.Is(err, domain.ErrValidation):
		log.Debug("advertisement operation rejected",
			"operation", op,
			"reason", err.Error(),
			key, value)
	default:
		log.Error("advertisement operation failed",
			"operation", op,
			"error", redact.Error(err),
			key, value)
	}
}
