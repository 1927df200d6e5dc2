package domain

// Cache represents one geocache listing. Its id is the external numeric id
// from the listing site, not a store-generated value. Lat, Lon and GCID are
// copied from the primary waypoint at import time so that exports and queries
// avoid a join.
type Cache struct {
	ID           int64   // External numeric id.
	Lat          float64 // Copied from the primary waypoint.
	Lon          float64 // Copied from the primary waypoint.
	GCID         string  // The primary waypoint's name.
	Available    bool
	Archived     bool
	Name         string
	PlacedBy     string
	OwnerID      int64  // Reference into the cacher table.
	Owner        Cacher // Hydrated on load.
	TypeID       int64
	Type         string
	ContainerID  int64
	Container    string
	CountryID    int64
	Country      string
	StateID      int64
	State        string
	Difficulty   float64 // Rating with one fractional digit (1.0 .. 5.0).
	Terrain      float64 // Rating with one fractional digit (1.0 .. 5.0).
	ShortDesc    string
	ShortHTML    bool
	LongDesc     string
	LongHTML     bool
	EncodedHints string
	LastLogs     string // ";"-joined type names of the 5 newest logs, newest first.
	ImportID     string // Session id of the import that created the row.

	Waypoint   *Waypoint    // Primary waypoint, hydrated on load.
	Attributes []*Attribute // Hydrated on load.
	Logs       []*Log       // Hydrated on load.
}

// CacheRepository defines the read surface for caches.
type CacheRepository interface {
	// GetCache retrieves a cache by its external id with the owner, lookup
	// display names, attributes, logs, and primary waypoint hydrated.
	// It returns an error satisfying errors.Is against the store's not-found
	// sentinel when no such cache exists.
	GetCache(id int64) (*Cache, error)
}
