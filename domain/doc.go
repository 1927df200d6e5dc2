// Package domain defines the core data structures of the geodb application.
// It contains the primary models persisted by the store, such as Waypoint,
// Cache, Cacher, and Log, as well as the repository interfaces that define
// the contracts for data persistence and reference-value resolution.
//
// This package serves as the central point for application-wide types,
// ensuring a clean separation between the GPX codec, the database layer,
// and any outer surfaces. By defining interfaces for repositories, the
// domain package remains independent of the data storage technology.
package domain
