package testdb

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/ads-api/internal/ciutil"
	"github.com/phrazzld/ads-api/internal/platform/postgres"
)

// DefaultTimeout bounds connection checks, migrations and each transaction.
const DefaultTimeout = 30 * time.Second

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(slog.Default().With(slog.String("function", "testdb.GetTestDatabaseURL")))
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// Open returns a pool connected to the test database with all migrations
// applied. The pool is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		if ciutil.IsCI() {
			t.Fatalf("no test database configured in CI; set one of %v", ciutil.TestDatabaseURLVars)
		}
		t.Skipf("no test database configured (%v), skipping integration test", ciutil.TestDatabaseURLVars)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open test database %s: %v", ciutil.MaskSensitiveValue(dsn), err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database %s: %v", ciutil.MaskSensitiveValue(dsn), err)
	}
	if _, err := postgres.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
