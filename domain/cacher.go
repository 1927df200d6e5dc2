package domain

// Cacher is a person identity, either a cache owner or a log finder.
// The natural key is the external GCID; the display name may change between
// documents and is refreshed whenever the same GCID is seen again.
type Cacher struct {
	ID   int64  // Surrogate id assigned by the store.
	GCID string // External id as found in document attributes.
	Name string // Display name, refreshed on re-sight.
}
