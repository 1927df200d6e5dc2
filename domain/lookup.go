package domain

// Lookup is one row of a small reference table mapping a display name to a
// surrogate id. Lookup rows are created lazily on first sight and never
// deleted or merged.
type Lookup struct {
	ID   int64
	Name string
}

// Resolver maps natural keys to surrogate ids, creating a new lookup row the
// first time a key is seen and reusing the existing row afterwards. Repeated
// calls with the same key, within or across imports, never create duplicates.
//
// There is one method per lookup kind rather than a single kind parameter so
// that adding a kind is a compile-time change, not a runtime string.
type Resolver interface {
	ResolveCacheType(name string) (int64, error)
	ResolveCacheContainer(name string) (int64, error)
	ResolveCacheCountry(name string) (int64, error)
	ResolveCacheState(name string) (int64, error)
	ResolveWaypointSym(name string) (int64, error)
	ResolveWaypointType(name string) (int64, error)
	ResolveLogType(name string) (int64, error)

	// ResolveCacher resolves a person by external id. The display name is
	// refreshed on every call, so the stored name always reflects the most
	// recently seen document.
	ResolveCacher(gcID string, name string) (int64, error)

	// ResolveAttribute resolves an attribute by its full natural key.
	ResolveAttribute(gcID int64, inc bool, name string) (int64, error)
}
