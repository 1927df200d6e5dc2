package gpx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/andibee/geodb/domain"
)

// Namespaces of the two-namespace GPX dialect.
const (
	// Namespace is the generic topografix waypoint namespace.
	Namespace = "http://www.topografix.com/GPX/1/0"
	// GroundspeakNamespace is the cache-listing extension namespace.
	GroundspeakNamespace = "http://www.groundspeak.com/cache/1/0/1"

	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Source is the read surface the exporter loads records from.
type Source interface {
	// GetCache returns a fully hydrated cache or an error for unknown ids.
	GetCache(id int64) (*domain.Cache, error)

	// GetSatelliteWaypoints returns the non-primary waypoints sharing a GC code.
	GetSatelliteWaypoints(gcCode string) ([]*domain.Waypoint, error)
}

// GCCode derives the canonical GC code from a waypoint name by replacing its
// first two characters with "GC". Waypoint names are assumed to begin with a
// two-character listing prefix ("OC1234" -> "GC1234"); this is a format
// convention of the dialect, not something that can be validated. Keep the
// assumption contained here.
func GCCode(name string) string {
	if len(name) < 2 {
		return name
	}
	return "GC" + name[2:]
}

// formatBool renders a boolean in the dialect's literal form.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// parseBool reads the dialect's boolean literals. Anything but the exact
// string "True" is false.
func parseBool(s string) bool {
	return s == "True"
}

// formatCoord renders a coordinate in its shortest decimal textual form.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatRating renders a difficulty or terrain rating, dropping the trailing
// ".0" the dialect omits ("2.0" -> "2", "2.5" stays). This is a textual
// convention for the one-fractional-digit ratings, not general formatting.
func formatRating(f float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(f, 'f', 1, 64), ".0")
}

// subElement appends a child element with optional text content.
func subElement(parent *etree.Element, tag string, text string) *etree.Element {
	el := parent.CreateElement(tag)
	if text != "" {
		el.SetText(text)
	}
	return el
}

// parseFloatAttr reads a required numeric attribute. A missing or malformed
// value is a hard error that aborts the surrounding operation.
func parseFloatAttr(el *etree.Element, name string) (float64, error) {
	value := el.SelectAttrValue(name, "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s attribute %q on <%s> : %w", name, value, el.Tag, err)
	}
	return f, nil
}

// parseIntAttr reads a required integer attribute.
func parseIntAttr(el *etree.Element, name string) (int64, error) {
	value := el.SelectAttrValue(name, "")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s attribute %q on <%s> : %w", name, value, el.Tag, err)
	}
	return id, nil
}
