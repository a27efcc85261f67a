// Package sqlite provides the SQLite-backed implementation of the persistent
// driven ports.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation that needs no
// CGO. A single database connection backs:
//
//   - AlertStore: alert send attempts and cooldown lookups
//   - SchedulerStore: scheduled task state and run history
//
// # Schema
//
// The schema is managed through numbered migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ecobin/data/ecobin.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode.
package sqlite
