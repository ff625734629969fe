package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/postgres"
	"github.com/phrazzld/ads-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adColumns = []string{
	"id", "title", "description", "owner_id", "created_at",
	"id", "username", "email", "created_at",
}

func TestPostgresAdvertisementStore_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)
	created := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO advertisements").
		WithArgs("Bike", "Red", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), created))

	ad := &domain.Advertisement{Title: "Bike", Description: "Red", OwnerID: 1}
	require.NoError(t, s.Create(context.Background(), ad))
	assert.Equal(t, int64(5), ad.ID)
	assert.Equal(t, created, ad.CreatedAt)
}

func TestPostgresAdvertisementStore_Create_UnknownOwner(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)

	mock.ExpectQuery("INSERT INTO advertisements").
		WillReturnError(newPgError("23503"))

	err := s.Create(context.Background(), &domain.Advertisement{Title: "Bike", Description: "Red", OwnerID: 99})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPostgresAdvertisementStore_GetByID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`JOIN users u ON u.id = a.owner_id\s+WHERE a.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(adColumns).
			AddRow(int64(5), "Bike", "Red", int64(1), now, int64(1), "alice", "alice@example.com", now))

	ad, err := s.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, ad.Owner)
	assert.Equal(t, "alice", ad.Owner.Username)
	assert.Equal(t, ad.OwnerID, ad.Owner.ID)
	assert.Empty(t, ad.Owner.HashedPassword)
}

func TestPostgresAdvertisementStore_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)

	mock.ExpectQuery("FROM advertisements a").WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrAdvertisementNotFound)
}

func TestPostgresAdvertisementStore_GetByIDForUpdate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)

	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at"}).
			AddRow(int64(5), "Bike", "Red", int64(1), time.Now()))

	ad, err := s.GetByIDForUpdate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ad.OwnerID)
	assert.Nil(t, ad.Owner)
}

func TestPostgresAdvertisementStore_List(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`ORDER BY a.created_at DESC, a.id DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(adColumns).
			AddRow(int64(3), "C", "c", int64(1), now, int64(1), "alice", "a@example.com", now).
			AddRow(int64(2), "B", "b", int64(2), now, int64(2), "bob", "b@example.com", now))

	ads, err := s.List(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, int64(3), ads[0].ID)
	assert.Equal(t, "bob", ads[1].Owner.Username)
}

func TestPostgresAdvertisementStore_List_QueryError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)
	dbErr := errors.New("connection reset by peer")

	mock.ExpectQuery("FROM advertisements a").WillReturnError(dbErr)

	_, err := s.List(context.Background(), 10, 0)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list", storeErr.Operation)
	assert.ErrorIs(t, err, dbErr)
}

func TestPostgresAdvertisementStore_Count(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM advertisements`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}

func TestPostgresAdvertisementStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := postgres.NewPostgresAdvertisementStore(db, nil)

	mock.ExpectExec("UPDATE advertisements").
		WithArgs("Car", "Blue", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE advertisements").
		WithArgs("Car", "Blue", int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM advertisements WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM advertisements WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	assert.NoError(t, s.Update(ctx, &domain.Advertisement{ID: 5, Title: "Car", Description: "Blue"}))
	assert.ErrorIs(t, s.Update(ctx, &domain.Advertisement{ID: 6, Title: "Car", Description: "Blue"}),
		store.ErrAdvertisementNotFound)
	assert.NoError(t, s.Delete(ctx, 5))
	assert.ErrorIs(t, s.Delete(ctx, 5), store.ErrAdvertisementNotFound)
}
