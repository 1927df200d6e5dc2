package domain

// Waypoint represents one GPX waypoint. A waypoint that carries the
// groundspeak cache extension is the primary waypoint of that cache and has
// CacheID set; additional waypoints sharing the cache's GC code (parking,
// trailheads and similar) have CacheID nil and are matched by GCCode only.
type Waypoint struct {
	ID       int64   // Surrogate id assigned by the store.
	Lat      float64 // Latitude in decimal degrees.
	Lon      float64 // Longitude in decimal degrees.
	Time     string  // Timestamp text as found in the document.
	Name     string  // Waypoint name, e.g. "OC1234" or "GC1234".
	GCCode   string  // Canonical GC code derived from Name.
	Cmt      string  // Comment text.
	Desc     string  // Description text.
	URL      string  // Listing URL.
	URLName  string  // Listing URL display name.
	SymID    int64   // Reference into the waypoint symbol lookup.
	Sym      string  // Symbol display name, hydrated on load.
	TypeID   int64   // Reference into the waypoint type lookup.
	Type     string  // Type display name, hydrated on load.
	CacheID  *int64  // Owning cache, set iff the cache extension was present.
	ImportID string  // Session id of the import that created the row.
}

// WaypointRepository defines the read surface for waypoints.
type WaypointRepository interface {
	// GetWaypoint retrieves a single waypoint by its surrogate id with the
	// symbol and type display names hydrated.
	GetWaypoint(id int64) (*Waypoint, error)

	// GetSatelliteWaypoints retrieves every waypoint sharing the given GC code
	// that is not itself the primary waypoint of a cache.
	GetSatelliteWaypoints(gcCode string) ([]*Waypoint, error)
}
