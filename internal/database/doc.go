// Package database provides the connection pool for the result cache.
//
// The cache is a single PostgreSQL/TimescaleDB database holding the
// per-second derived series and the per-lag response curves. All writes are
// append-only.
package database
