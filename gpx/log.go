package gpx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/andibee/geodb/domain"
)

// encodeLog appends one log element inside the logs block. Child order is
// fixed by the dialect.
func encodeLog(logsEl *etree.Element, log *domain.Log) {
	el := logsEl.CreateElement("groundspeak:log")
	el.CreateAttr("id", strconv.FormatInt(log.ID, 10))
	subElement(el, "groundspeak:date", log.Date)
	subElement(el, "groundspeak:type", log.Type)
	finder := subElement(el, "groundspeak:finder", log.Finder.Name)
	finder.CreateAttr("id", log.Finder.GCID)
	text := subElement(el, "groundspeak:text", log.Text)
	text.CreateAttr("encoded", formatBool(log.TextEncoded))
}

// decodeLog reads one log element, resolving the type and finder references,
// and persists the row immediately. The returned log keeps the type name so
// the caller can derive the cache's last_logs summary.
func (imp *Importer) decodeLog(el *etree.Element, cacheID int64) (*domain.Log, error) {
	log := &domain.Log{CacheID: cacheID, ImportID: imp.Options.SessionID}

	var err error
	if log.ID, err = parseIntAttr(el, "id"); err != nil {
		return nil, err
	}

	for _, child := range el.ChildElements() {
		if child.NamespaceURI() != GroundspeakNamespace {
			continue
		}
		switch child.Tag {
		case "date":
			log.Date = child.Text()
		case "type":
			log.Type = child.Text()
			if log.TypeID, err = imp.Store.ResolveLogType(child.Text()); err != nil {
				return nil, err
			}
		case "finder":
			log.Finder = domain.Cacher{GCID: child.SelectAttrValue("id", ""), Name: child.Text()}
			if log.FinderID, err = imp.Store.ResolveCacher(log.Finder.GCID, log.Finder.Name); err != nil {
				return nil, err
			}
			log.Finder.ID = log.FinderID
		case "text":
			log.Text = child.Text()
			log.TextEncoded = parseBool(child.SelectAttrValue("encoded", ""))
		case "log_wpt":
			lat, err := parseFloatAttr(child, "lat")
			if err != nil {
				return nil, err
			}
			lon, err := parseFloatAttr(child, "lon")
			if err != nil {
				return nil, err
			}
			log.Lat = &lat
			log.Lon = &lon
		}
	}

	if err := imp.Store.InsertLog(log); err != nil {
		return nil, err
	}
	return log, nil
}
