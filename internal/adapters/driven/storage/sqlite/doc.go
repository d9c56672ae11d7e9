// Package sqlite provides an SQLite-backed implementation of driven.AnalyticsStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The database lives in memory for the
// lifetime of the store: a normalised table is loaded, queried for per-year and
// per-province aggregates, and discarded. Nothing is persisted.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Thread Safety
//
// The store holds a single connection, since every connection to an
// in-memory database sees its own private database.
package sqlite
