package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
	"github.com/phrazzld/ads-api/internal/store"
)

// selectAdvertisementWithOwner is shared by every read that returns owners.
const selectAdvertisementWithOwner = `
	SELECT a.id, a.title, a.description, a.owner_id, a.created_at,
	       u.id, u.username, u.email, u.created_at
	FROM advertisements a
	JOIN users u ON u.id = a.owner_id
`

// PostgresAdvertisementStore implements the store.AdvertisementStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAdvertisementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdvertisementStore creates a new PostgreSQL implementation of the
// AdvertisementStore interface. If logger is nil, a default logger will be used.
func NewPostgresAdvertisementStore(db store.DBTX, logger *slog.Logger) *PostgresAdvertisementStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdvertisementStore{
		db:     db,
		logger: logger.With(slog.String("component", "advertisement_store")),
	}
}

// Ensure PostgresAdvertisementStore implements store.AdvertisementStore interface
var _ store.AdvertisementStore = (*PostgresAdvertisementStore)(nil)

// WithTx implements store.AdvertisementStore.WithTx.
func (s *PostgresAdvertisementStore) WithTx(tx *sql.Tx) store.AdvertisementStore {
	return &PostgresAdvertisementStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AdvertisementStore.Create.
func (s *PostgresAdvertisementStore) Create(ctx context.Context, ad *domain.Advertisement) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO advertisements (title, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, ad.Title, ad.Description, ad.OwnerID).
		Scan(&ad.ID, &ad.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("advertisement owner does not exist",
				slog.Int64("owner_id", ad.OwnerID))
			return store.ErrUserNotFound
		}
		log.Error("failed to insert advertisement",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ad.OwnerID))
		return store.NewStoreError("advertisement", "create", "insert failed", MapError(err))
	}

	log.Info("advertisement created successfully",
		slog.Int64("advertisement_id", ad.ID),
		slog.Int64("owner_id", ad.OwnerID))
	return nil
}

// GetByID implements store.AdvertisementStore.GetByID.
func (s *PostgresAdvertisementStore) GetByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, selectAdvertisementWithOwner+` WHERE a.id = $1`, id)
	ad, err := scanAdvertisementWithOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("advertisement not found", slog.Int64("advertisement_id", id))
			return nil, store.ErrAdvertisementNotFound
		}
		log.Error("failed to get advertisement",
			slog.String("error", err.Error()),
			slog.Int64("advertisement_id", id))
		return nil, store.NewStoreError("advertisement", "get", "query failed", MapError(err))
	}

	return ad, nil
}

// GetByIDForUpdate implements store.AdvertisementStore.GetByIDForUpdate.
func (s *PostgresAdvertisementStore) GetByIDForUpdate(
	ctx context.Context,
	id int64,
) (*domain.Advertisement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, owner_id, created_at
		FROM advertisements
		WHERE id = $1
		FOR UPDATE
	`

	var ad domain.Advertisement
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.OwnerID,
		&ad.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAdvertisementNotFound
		}
		log.Error("failed to lock advertisement",
			slog.String("error", err.Error()),
			slog.Int64("advertisement_id", id))
		return nil, store.NewStoreError("advertisement", "lock", "query failed", MapError(err))
	}

	return &ad, nil
}

// List implements store.AdvertisementStore.List.
// Ties on created_at are broken by id so pages never overlap.
func (s *PostgresAdvertisementStore) List(
	ctx context.Context,
	limit, offset int,
) ([]*domain.Advertisement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := selectAdvertisementWithOwner + `
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list advertisements",
			slog.String("error", err.Error()),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, store.NewStoreError("advertisement", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	ads := make([]*domain.Advertisement, 0, limit)
	for rows.Next() {
		ad, err := scanAdvertisementWithOwner(rows)
		if err != nil {
			return nil, store.NewStoreError("advertisement", "list", "scan failed", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("advertisement", "list", "row iteration failed", err)
	}

	log.Debug("listed advertisements",
		slog.Int("count", len(ads)),
		slog.Int("offset", offset))
	return ads, nil
}

// Count implements store.AdvertisementStore.Count.
func (s *PostgresAdvertisementStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM advertisements`).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count advertisements",
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("advertisement", "count", "query failed", MapError(err))
	}
	return total, nil
}

// Update implements store.AdvertisementStore.Update.
func (s *PostgresAdvertisementStore) Update(ctx context.Context, ad *domain.Advertisement) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE advertisements
		SET title = $1, description = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, ad.Title, ad.Description, ad.ID)
	if err != nil {
		log.Error("failed to update advertisement",
			slog.String("error", err.Error()),
			slog.Int64("advertisement_id", ad.ID))
		return store.NewStoreError("advertisement", "update", "exec failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrAdvertisementNotFound); err != nil {
		return err
	}

	log.Info("advertisement updated successfully", slog.Int64("advertisement_id", ad.ID))
	return nil
}

// Delete implements store.AdvertisementStore.Delete.
func (s *PostgresAdvertisementStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete advertisement",
			slog.String("error", err.Error()),
			slog.Int64("advertisement_id", id))
		return store.NewStoreError("advertisement", "delete", "exec failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrAdvertisementNotFound); err != nil {
		return err
	}

	log.Info("advertisement deleted successfully", slog.Int64("advertisement_id", id))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdvertisementWithOwner(row rowScanner) (*domain.Advertisement, error) {
	var (
		ad    domain.Advertisement
		owner domain.User
	)
	err := row.Scan(
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.OwnerID,
		&ad.CreatedAt,
		&owner.ID,
		&owner.Username,
		&owner.Email,
		&owner.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ad.Owner = &owner
	return &ad, nil
}
