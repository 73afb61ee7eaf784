// Package sqlite provides a SQLite-based implementation of driven.HistoryGateway.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. All three history stores share one
// table, keyed by store name and ordered by position.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.pdfseek/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. Each Save runs in a single transaction, so a
// store is never observed half-written.
package sqlite
