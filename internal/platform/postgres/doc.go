// Package postgres provides the PostgreSQL implementation of the question
// store defined in internal/store, together with its embedded goose
// migrations. Connections use the pgx stdlib driver; the caller owns the
// *sql.DB and may hand the store a transaction instead.
package postgres
