package domain

// Attribute is one listing attribute ("Dogs allowed", "Night cache", ...).
// Attributes are shared between caches through a join table; the natural key
// for deduplication is the triple (GCID, Inc, Name).
type Attribute struct {
	ID   int64 // Surrogate id assigned by the store.
	GCID int64 // External numeric id of the attribute kind.
	Inc  bool  // Whether the attribute applies positively or negated.
	Name string
}
