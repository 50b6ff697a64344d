// Package sqlite provides SQLite-backed implementations of driven port interfaces.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation, so the
// binary cross-compiles without CGO. The store currently backs:
//
//   - SubmissionStore: the local journal of fetch and sync submissions
//
// # Schema
//
// The schema is managed by goose through versioned migrations in
// migrations/. Each NNN_name.sql file carries goose Up and Down sections.
//
// # Data Location
//
// By default, the database is stored at ~/.storesync/data/journal.db.
// Timestamps are stored as Unix milliseconds in UTC.
package sqlite
