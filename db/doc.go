// Package db provides the database layer for the geodb application.
// It encapsulates all interactions with the underlying SQLite database,
// managing data persistence for waypoints, caches, cachers, logs, attributes,
// and the small lookup tables used to normalize repeated reference values.
//
// This package is responsible for:
//   - Establishing and managing database connections (`db.go`).
//   - Defining database-specific data structures that map to SQL table schemas.
//   - Implementing the repository and resolver interfaces from the `domain`
//     package, including the transactional ImportSession used by GPX imports.
//   - Handling data conversion between domain structs and database-friendly
//     structs, including the use of `sql.Null*` types for nullable fields.
//   - Managing database migrations (`migrations/`).
package db
