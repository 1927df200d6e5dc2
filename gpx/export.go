package gpx

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/andibee/geodb/domain"
)

// Fixed descriptive metadata of the document envelope.
const (
	creator    = "geodb"
	docName    = "Cache Listing Generated by geodb"
	docDesc    = "This is an individual list of geocaches generated by geodb."
	docAuthor  = "geodb"
	docEmail   = "export@geodb.local"
	docURL     = "https://github.com/andibee/geodb"
	docURLName = "Geocaching. What else?"
	docKeyword = "cache, geocache"
)

// ExportOptions is the shared mutable context of one export pass. It is
// threaded explicitly through the whole encode call tree and must not be
// reused concurrently across overlapping exports.
type ExportOptions struct {
	// List is the ordered sequence of cache ids to include.
	List []int64
	// MaxLogs caps the oldest-first logs block; 0 omits the block entirely.
	MaxLogs int
	// Waypoints includes satellite waypoints as top-level siblings.
	Waypoints bool
	// PrettyHTML reindents HTML description bodies on the way out.
	PrettyHTML bool
}

// Exporter renders caches from a Source into GPX documents.
type Exporter struct {
	Source Source
	// Now supplies the envelope timestamp; tests pin it.
	Now func() time.Time
}

// NewExporter returns an Exporter over the given source using wall-clock time.
func NewExporter(source Source) *Exporter {
	return &Exporter{Source: source, Now: time.Now}
}

// Export renders the caches named by opts.List into a GPX document and
// returns the serialized bytes. The bounds element reports the tightest
// rectangle containing every waypoint written, satellites included.
// An unknown cache id aborts the export with an error wrapping the source's
// not-found sentinel.
func (exp *Exporter) Export(opts ExportOptions) ([]byte, error) {
	bounds := NewBounds()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("gpx")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("version", "1.0")
	root.CreateAttr("creator", creator)
	root.CreateAttr("xsi:schemaLocation",
		fmt.Sprintf("%s %s/gpx.xsd %s %s/cache.xsd", Namespace, Namespace, GroundspeakNamespace, GroundspeakNamespace))

	subElement(root, "name", docName)
	subElement(root, "desc", docDesc)
	subElement(root, "author", docAuthor)
	subElement(root, "email", docEmail)
	subElement(root, "url", docURL)
	subElement(root, "urlname", docURLName)
	subElement(root, "time", exp.Now().Format("2006-01-02T15:04:05"))
	subElement(root, "keyword", docKeyword)
	boundsEl := root.CreateElement("bounds")

	for _, id := range opts.List {
		cache, err := exp.Source.GetCache(id)
		if err != nil {
			return nil, fmt.Errorf("loading cache %d : %w", id, err)
		}
		if err := exp.encodeCacheRecord(root, cache, &opts, bounds); err != nil {
			return nil, err
		}
	}

	boundsEl.CreateAttr("minlat", formatCoord(bounds.MinLat))
	boundsEl.CreateAttr("minlon", formatCoord(bounds.MinLon))
	boundsEl.CreateAttr("maxlat", formatCoord(bounds.MaxLat))
	boundsEl.CreateAttr("maxlon", formatCoord(bounds.MaxLon))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing document : %w", err)
	}
	return out, nil
}

// encodeCacheRecord writes one cache's primary waypoint with the nested
// extension and, when requested, its satellite waypoints as top-level
// siblings. Satellites are matched by GC code and are never re-nested under
// the cache they belong to.
func (exp *Exporter) encodeCacheRecord(root *etree.Element, cache *domain.Cache, opts *ExportOptions, bounds *Bounds) error {
	if cache.Waypoint == nil {
		return fmt.Errorf("cache %d has no primary waypoint", cache.ID)
	}

	wptEl := encodeWaypoint(root, cache.Waypoint, bounds)
	encodeCache(wptEl, cache, opts)

	if !opts.Waypoints {
		return nil
	}

	satellites, err := exp.Source.GetSatelliteWaypoints(cache.Waypoint.GCCode)
	if err != nil {
		return fmt.Errorf("loading satellite waypoints for cache %d : %w", cache.ID, err)
	}
	for _, satellite := range satellites {
		encodeWaypoint(root, satellite, bounds)
	}
	return nil
}
