//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/keyring-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks and schema setup.
const TestTimeout = 10 * time.Second

// EnvTestDatabaseURL names the variable holding the integration database URL.
const EnvTestDatabaseURL = "KEYRING_TEST_DB_URL"

var migrateOnce sync.Once

// GetTestDatabaseURL returns the integration database URL, or "" when unset.
func GetTestDatabaseURL() string {
	return os.Getenv(EnvTestDatabaseURL)
}

// GetTestDBWithT opens the integration database, applies the schema once per
// test binary and registers cleanup. The test is skipped when no database is
// configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping integration test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping database")

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
