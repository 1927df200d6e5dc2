package gpx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/yosssi/gohtml"

	"github.com/andibee/geodb/domain"
)

// lastLogCount is how many of the newest logs feed the derived last_logs field.
const lastLogCount = 5

// encodeCache nests the groundspeak cache extension inside the waypoint
// element. Child order is fixed by the dialect; the attributes and logs
// blocks are omitted entirely when empty.
func encodeCache(wptEl *etree.Element, cache *domain.Cache, opts *ExportOptions) {
	el := wptEl.CreateElement("groundspeak:cache")
	el.CreateAttr("xmlns:groundspeak", GroundspeakNamespace)
	el.CreateAttr("id", strconv.FormatInt(cache.ID, 10))
	el.CreateAttr("available", formatBool(cache.Available))
	el.CreateAttr("archived", formatBool(cache.Archived))

	subElement(el, "groundspeak:name", cache.Name)
	subElement(el, "groundspeak:placed_by", cache.PlacedBy)
	owner := subElement(el, "groundspeak:owner", cache.Owner.Name)
	owner.CreateAttr("id", cache.Owner.GCID)
	subElement(el, "groundspeak:type", cache.Type)
	subElement(el, "groundspeak:container", cache.Container)

	if len(cache.Attributes) > 0 {
		attrsEl := el.CreateElement("groundspeak:attributes")
		for _, attribute := range cache.Attributes {
			attrEl := subElement(attrsEl, "groundspeak:attribute", attribute.Name)
			attrEl.CreateAttr("id", strconv.FormatInt(attribute.GCID, 10))
			if attribute.Inc {
				attrEl.CreateAttr("inc", "1")
			} else {
				attrEl.CreateAttr("inc", "0")
			}
		}
	}

	subElement(el, "groundspeak:difficulty", formatRating(cache.Difficulty))
	subElement(el, "groundspeak:terrain", formatRating(cache.Terrain))
	subElement(el, "groundspeak:country", cache.Country)
	subElement(el, "groundspeak:state", cache.State)

	shortDesc := subElement(el, "groundspeak:short_description", descriptionText(cache.ShortDesc, cache.ShortHTML, opts))
	shortDesc.CreateAttr("html", formatBool(cache.ShortHTML))
	longDesc := subElement(el, "groundspeak:long_description", descriptionText(cache.LongDesc, cache.LongHTML, opts))
	longDesc.CreateAttr("html", formatBool(cache.LongHTML))
	subElement(el, "groundspeak:encoded_hints", cache.EncodedHints)

	if len(cache.Logs) > 0 && opts.MaxLogs > 0 {
		// Exports carry the oldest logs, ascending. This is deliberately
		// asymmetric with the import-side last_logs field, which keeps the
		// newest five; both behaviors are part of the dialect as consumed.
		sorted := make([]*domain.Log, len(cache.Logs))
		copy(sorted, cache.Logs)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
		if len(sorted) > opts.MaxLogs {
			sorted = sorted[:opts.MaxLogs]
		}
		logsEl := el.CreateElement("groundspeak:logs")
		for _, log := range sorted {
			encodeLog(logsEl, log)
		}
	}
}

// descriptionText optionally reindents HTML description bodies.
func descriptionText(text string, html bool, opts *ExportOptions) string {
	if html && opts.PrettyHTML && text != "" {
		return string(gohtml.FormatBytes([]byte(text)))
	}
	return text
}

// decodeCache reads the cache extension element. Attribute and log children
// are persisted as they are decoded; the collected logs feed the derived
// last_logs field. Fields absent from the document keep their zero values.
func (imp *Importer) decodeCache(el *etree.Element) (*domain.Cache, error) {
	cache := &domain.Cache{ImportID: imp.Options.SessionID}

	var err error
	if cache.ID, err = parseIntAttr(el, "id"); err != nil {
		return nil, err
	}
	cache.Available = parseBool(el.SelectAttrValue("available", ""))
	cache.Archived = parseBool(el.SelectAttrValue("archived", ""))

	var logs []*domain.Log
	for _, child := range el.ChildElements() {
		if child.NamespaceURI() != GroundspeakNamespace {
			continue
		}
		switch child.Tag {
		case "name":
			cache.Name = child.Text()
		case "placed_by":
			cache.PlacedBy = child.Text()
		case "owner":
			cache.Owner = domain.Cacher{GCID: child.SelectAttrValue("id", ""), Name: child.Text()}
			if cache.OwnerID, err = imp.Store.ResolveCacher(cache.Owner.GCID, cache.Owner.Name); err != nil {
				return nil, err
			}
			cache.Owner.ID = cache.OwnerID
		case "type":
			cache.Type = child.Text()
			if cache.TypeID, err = imp.Store.ResolveCacheType(child.Text()); err != nil {
				return nil, err
			}
		case "container":
			cache.Container = child.Text()
			if cache.ContainerID, err = imp.Store.ResolveCacheContainer(child.Text()); err != nil {
				return nil, err
			}
		case "difficulty":
			if cache.Difficulty, err = parseRating(child); err != nil {
				return nil, err
			}
		case "terrain":
			if cache.Terrain, err = parseRating(child); err != nil {
				return nil, err
			}
		case "country":
			cache.Country = child.Text()
			if cache.CountryID, err = imp.Store.ResolveCacheCountry(child.Text()); err != nil {
				return nil, err
			}
		case "state":
			cache.State = child.Text()
			if cache.StateID, err = imp.Store.ResolveCacheState(child.Text()); err != nil {
				return nil, err
			}
		case "short_description":
			cache.ShortDesc = child.Text()
			cache.ShortHTML = parseBool(child.SelectAttrValue("html", ""))
		case "long_description":
			cache.LongDesc = child.Text()
			cache.LongHTML = parseBool(child.SelectAttrValue("html", ""))
		case "encoded_hints":
			cache.EncodedHints = child.Text()
		case "attributes":
			for _, attrEl := range child.ChildElements() {
				if attrEl.Tag == "attribute" && attrEl.NamespaceURI() == GroundspeakNamespace {
					if err := imp.decodeAttribute(attrEl, cache.ID); err != nil {
						return nil, err
					}
				}
			}
		case "logs":
			for _, logEl := range child.ChildElements() {
				if logEl.Tag == "log" && logEl.NamespaceURI() == GroundspeakNamespace {
					log, err := imp.decodeLog(logEl, cache.ID)
					if err != nil {
						return nil, err
					}
					logs = append(logs, log)
				}
			}
		}
	}

	cache.Logs = logs
	cache.LastLogs = lastLogs(logs)
	return cache, nil
}

// decodeAttribute resolves one attribute element and links it to its cache.
func (imp *Importer) decodeAttribute(el *etree.Element, cacheID int64) error {
	gcID, err := parseIntAttr(el, "id")
	if err != nil {
		return err
	}
	inc := el.SelectAttrValue("inc", "") == "1"

	attributeID, err := imp.Store.ResolveAttribute(gcID, inc, el.Text())
	if err != nil {
		return err
	}
	return imp.Store.LinkAttribute(cacheID, attributeID)
}

// lastLogs derives the compact summary of the newest log outcomes: the type
// names of the five chronologically latest logs, newest first, ";"-joined.
func lastLogs(logs []*domain.Log) string {
	sorted := make([]*domain.Log, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > lastLogCount {
		sorted = sorted[:lastLogCount]
	}

	types := make([]string, len(sorted))
	for i, log := range sorted {
		types[i] = log.Type
	}
	return strings.Join(types, ";")
}

// parseRating reads a difficulty or terrain value.
func parseRating(el *etree.Element) (float64, error) {
	f, err := strconv.ParseFloat(el.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing <%s> value %q : %w", el.Tag, el.Text(), err)
	}
	return f, nil
}
