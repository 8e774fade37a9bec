// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the quiz and statistics services work
// unchanged against SQLite or PostgreSQL.
package store
