package domain

// ImportStore is the transactional write surface of one import run. All
// writes issued through it become visible together on Commit; Rollback
// discards everything, leaving the store untouched. An ImportStore must not
// be shared between concurrent imports.
type ImportStore interface {
	Resolver

	InsertWaypoint(wpt *Waypoint) error
	InsertCache(cache *Cache) error
	InsertLog(log *Log) error

	// LinkAttribute adds one row to the cache/attribute join table.
	LinkAttribute(cacheID, attributeID int64) error

	Commit() error
	Rollback() error
}
