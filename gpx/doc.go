// Package gpx converts between the Groundspeak GPX dialect and the domain
// model. The dialect layers the groundspeak cache extension namespace over
// the generic topografix waypoint namespace; booleans travel as the literal
// strings "True" and "False" and ratings drop a trailing ".0".
//
// Exporter renders a selected set of caches, their owners, attributes, and
// logs into a conformant document with computed geographic bounds. Importer
// parses such a document, deduplicates repeated reference values through the
// domain.Resolver, and persists waypoints, caches, attributes, and logs
// through a domain.ImportStore, committing once at the end.
package gpx
