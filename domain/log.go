package domain

// Log represents one log entry on a cache. Its id is the external numeric id
// from the document. Dates are kept as the document's ISO 8601 text and are
// ordered lexicographically, which for ISO timestamps matches chronological
// order.
type Log struct {
	ID          int64  // External numeric id.
	CacheID     int64  // Owning cache.
	Date        string // ISO 8601 text as found in the document.
	TypeID      int64  // Reference into the log type lookup.
	Type        string // Type display name, kept for derived fields.
	FinderID    int64  // Reference into the cacher table.
	Finder      Cacher // Hydrated on load.
	Text        string
	TextEncoded bool
	Lat         *float64 // Optional log location.
	Lon         *float64 // Optional log location.
	ImportID    string   // Session id of the import that created the row.
}

// LogRepository defines the read surface for logs.
type LogRepository interface {
	// GetLogs retrieves all logs of a cache with the type name and finder
	// identity hydrated.
	GetLogs(cacheID int64) ([]*Log, error)
}
