// Package testdb opens migrated databases for tests.
//
// SQLite databases are created in t.TempDir() and need no external service,
// so store and service tests run hermetically:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.OpenSQLite(t)
//	    questions := sqlite.NewQuestionStore(db, nil)
//	    ...
//	}
//
// PostgreSQL tests call OpenPostgres, which skips the test unless
// DATABASE_URL is set, and WithTx to isolate each test in a transaction
// that is rolled back when the test completes.
package testdb
