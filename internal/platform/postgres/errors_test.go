package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/ads-api/internal/platform/postgres"
	"github.com/phrazzld/ads-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		TableName:      "advertisements",
		ColumnName:     "owner_id",
		ConstraintName: "advertisements_owner_id_fkey",
	}
}

type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func(error) bool
		code  string
	}{
		{"unique", postgres.IsUniqueViolation, "23505"},
		{"foreign key", postgres.IsForeignKeyViolation, "23503"},
		{"check", postgres.IsCheckConstraintViolation, "23514"},
		{"not null", postgres.IsNotNullViolation, "23502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.check(newPgError(tt.code)))
			assert.True(t, tt.check(fmt.Errorf("insert: %w", newPgError(tt.code))))
			assert.False(t, tt.check(newPgError("42P01")))
			assert.False(t, tt.check(errors.New("generic error")))
			assert.False(t, tt.check(nil))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", newPgError("23505"), store.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tt.err), tt.target)
		})
	}

	for _, code := range []string{"23503", "23514", "23502"} {
		pgErr := newPgError(code)
		mapped := postgres.MapError(pgErr)
		assert.Same(t, pgErr, mapped, code)
		assert.NotErrorIs(t, mapped, store.ErrInvalidEntity, code)
		assert.NotErrorIs(t, mapped, store.ErrNotFound, code)
	}

	assert.NoError(t, postgres.MapError(nil))

	other := errors.New("connection refused")
	assert.Same(t, other, postgres.MapError(other))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrAdvertisementNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrAdvertisementNotFound),
		store.ErrAdvertisementNotFound)
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{err: resultErr}, nil), resultErr)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
}
