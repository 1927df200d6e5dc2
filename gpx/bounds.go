package gpx

// Bounds tracks the running lat/lon extrema of every waypoint written to a
// document. The sentinels guarantee the first Update wins all four extrema.
// A Bounds belongs to exactly one export pass; it must not be reused across
// overlapping exports.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBounds returns an accumulator seeded with the ±1000.0 sentinels.
func NewBounds() *Bounds {
	return &Bounds{
		MinLat: 1000.0,
		MaxLat: -1000.0,
		MinLon: 1000.0,
		MaxLon: -1000.0,
	}
}

// Update folds one position into the extrema.
func (b *Bounds) Update(lat, lon float64) {
	b.MinLat = min(b.MinLat, lat)
	b.MaxLat = max(b.MaxLat, lat)
	b.MinLon = min(b.MinLon, lon)
	b.MaxLon = max(b.MaxLon, lon)
}
