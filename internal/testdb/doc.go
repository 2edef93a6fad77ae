//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests run against the database named by KEYRING_TEST_DB_URL and are skipped
// when it is unset. Each test body runs inside a transaction that is rolled
// back afterwards, so tests can share one schema and run in parallel:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
