//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Tests open a real PostgreSQL database from DATABASE_URL (or
// MENSAGENS_TEST_DB_URL), apply the embedded migrations once, and run each
// case inside a transaction that is rolled back afterwards:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresMessageStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when no database URL is configured.
package testdb
