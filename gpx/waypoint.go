package gpx

import (
	"github.com/beevik/etree"

	"github.com/andibee/geodb/domain"
)

// encodeWaypoint appends one wpt element under parent and folds the
// waypoint's position into the running bounds. The child order is fixed by
// the dialect.
func encodeWaypoint(parent *etree.Element, wpt *domain.Waypoint, bounds *Bounds) *etree.Element {
	bounds.Update(wpt.Lat, wpt.Lon)

	el := parent.CreateElement("wpt")
	el.CreateAttr("lat", formatCoord(wpt.Lat))
	el.CreateAttr("lon", formatCoord(wpt.Lon))
	subElement(el, "time", wpt.Time)
	subElement(el, "name", wpt.Name)
	subElement(el, "cmt", wpt.Cmt)
	subElement(el, "desc", wpt.Desc)
	subElement(el, "url", wpt.URL)
	subElement(el, "urlname", wpt.URLName)
	subElement(el, "sym", wpt.Sym)
	subElement(el, "type", wpt.Type)
	return el
}

// decodeWaypoint reads one wpt element, resolving the symbol and type names
// and, when the cache extension is nested inside, delegating to the cache
// codec. The cache row is inserted before the waypoint so the waypoint can
// reference it; both carry the position of the wpt element.
func (imp *Importer) decodeWaypoint(el *etree.Element) error {
	wpt := &domain.Waypoint{ImportID: imp.Options.SessionID}

	var err error
	if wpt.Lat, err = parseFloatAttr(el, "lat"); err != nil {
		return err
	}
	if wpt.Lon, err = parseFloatAttr(el, "lon"); err != nil {
		return err
	}

	var cache *domain.Cache
	for _, child := range el.ChildElements() {
		switch ns := child.NamespaceURI(); {
		case ns == Namespace:
			switch child.Tag {
			case "time":
				wpt.Time = child.Text()
			case "name":
				wpt.Name = child.Text()
				wpt.GCCode = GCCode(wpt.Name)
			case "cmt":
				wpt.Cmt = child.Text()
			case "desc":
				wpt.Desc = child.Text()
			case "url":
				wpt.URL = child.Text()
			case "urlname":
				wpt.URLName = child.Text()
			case "sym":
				wpt.Sym = child.Text()
				if wpt.SymID, err = imp.Store.ResolveWaypointSym(child.Text()); err != nil {
					return err
				}
			case "type":
				wpt.Type = child.Text()
				if wpt.TypeID, err = imp.Store.ResolveWaypointType(child.Text()); err != nil {
					return err
				}
			}
		case ns == GroundspeakNamespace && child.Tag == "cache":
			if cache, err = imp.decodeCache(child); err != nil {
				return err
			}
			cacheID := cache.ID
			wpt.CacheID = &cacheID
		}
	}

	if cache != nil {
		// Copy position and code from the waypoint so that later queries on
		// the cache avoid a join.
		cache.Lat = wpt.Lat
		cache.Lon = wpt.Lon
		cache.GCID = wpt.Name
		if err := imp.Store.InsertCache(cache); err != nil {
			return err
		}
	}

	return imp.Store.InsertWaypoint(wpt)
}
