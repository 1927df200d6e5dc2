package gpx

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/beevik/etree"

	"github.com/andibee/geodb/domain"
)

// staticSource is a canned Source for exporter tests.
type staticSource struct {
	caches     map[int64]*domain.Cache
	satellites map[string][]*domain.Waypoint
}

var errNoSuchCache = errors.New("no cache with that id")

func (s *staticSource) GetCache(id int64) (*domain.Cache, error) {
	cache, ok := s.caches[id]
	if !ok {
		return nil, errNoSuchCache
	}
	return cache, nil
}

func (s *staticSource) GetSatelliteWaypoints(gcCode string) ([]*domain.Waypoint, error) {
	return s.satellites[gcCode], nil
}

func testCache() *domain.Cache {
	return &domain.Cache{
		ID:           4242,
		Lat:          10,
		Lon:          20,
		GCID:         "GC1D3F",
		Available:    true,
		Archived:     false,
		Name:         "Lorem",
		PlacedBy:     "tester",
		Owner:        domain.Cacher{ID: 1, GCID: "77", Name: "tester"},
		Type:         "Traditional Cache",
		Container:    "Regular",
		Difficulty:   2.0,
		Terrain:      2.5,
		Country:      "Germany",
		State:        "Nordrhein-Westfalen",
		ShortDesc:    "Short text",
		ShortHTML:    false,
		LongDesc:     "<p>Long</p>",
		LongHTML:     true,
		EncodedHints: "under the bridge",
		Waypoint: &domain.Waypoint{
			Lat:     10,
			Lon:     20,
			Time:    "2021-04-03T08:00:00",
			Name:    "GC1D3F",
			GCCode:  "GC1D3F",
			Cmt:     "quick find",
			Desc:    "Lorem by tester, Traditional Cache (2/2.5)",
			URL:     "https://example.org/GC1D3F",
			URLName: "Lorem",
			Sym:     "Geocache",
			Type:    "Geocache|Traditional Cache",
		},
	}
}

func testExporter(source Source) *Exporter {
	exporter := NewExporter(source)
	exporter.Now = func() time.Time { return time.Date(2021, 4, 3, 8, 0, 0, 0, time.UTC) }
	return exporter
}

func parseExport(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("parsing exported document: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "gpx" {
		t.Fatalf("\nwanted:\ngpx root\ngot:\n%v", root)
	}
	return root
}

func TestExporter_Export(t *testing.T) {
	t.Run("should write the envelope with schema location and bounds", func(t *testing.T) {
		second := testCache()
		second.ID = 4243
		second.Lat, second.Lon = 5, 25
		second.Waypoint = &domain.Waypoint{Lat: 5, Lon: 25, Name: "GC2B4C", GCCode: "GC2B4C"}

		source := &staticSource{caches: map[int64]*domain.Cache{4242: testCache(), 4243: second}}
		out, err := testExporter(source).Export(ExportOptions{List: []int64{4242, 4243}})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		root := parseExport(t, out)
		if got := root.SelectAttrValue("creator", ""); got != "geodb" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "geodb", got)
		}
		wantLocation := fmt.Sprintf("%s %s/gpx.xsd %s %s/cache.xsd", Namespace, Namespace, GroundspeakNamespace, GroundspeakNamespace)
		if got := root.SelectAttrValue("xsi:schemaLocation", ""); got != wantLocation {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", wantLocation, got)
		}

		bounds := root.SelectElement("bounds")
		if bounds == nil {
			t.Fatalf("\nwanted:\nbounds element\ngot:\nnil")
		}
		if bounds.SelectAttrValue("minlat", "") != "5" ||
			bounds.SelectAttrValue("maxlat", "") != "10" ||
			bounds.SelectAttrValue("minlon", "") != "20" ||
			bounds.SelectAttrValue("maxlon", "") != "25" {
			t.Fatalf("\nwanted:\n5/10/20/25\ngot:\n%v", bounds.Attr)
		}
	})

	t.Run("should render booleans and ratings in dialect form", func(t *testing.T) {
		source := &staticSource{caches: map[int64]*domain.Cache{4242: testCache()}}
		out, err := testExporter(source).Export(ExportOptions{List: []int64{4242}})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		root := parseExport(t, out)
		cacheEl := root.FindElement("wpt/groundspeak:cache")
		if cacheEl == nil {
			t.Fatalf("\nwanted:\nnested cache element\ngot:\nnil")
		}

		if cacheEl.SelectAttrValue("available", "") != "True" || cacheEl.SelectAttrValue("archived", "") != "False" {
			t.Fatalf("\nwanted:\nTrue/False\ngot:\n%v", cacheEl.Attr)
		}
		if got := cacheEl.SelectElement("difficulty").Text(); got != "2" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "2", got)
		}
		if got := cacheEl.SelectElement("terrain").Text(); got != "2.5" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "2.5", got)
		}
		if got := cacheEl.SelectElement("owner").SelectAttrValue("id", ""); got != "77" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "77", got)
		}
		if cacheEl.SelectElement("attributes") != nil {
			t.Fatalf("\nwanted:\nno attributes block\ngot:\none")
		}
	})

	t.Run("should cap the logs block at the oldest entries ascending", func(t *testing.T) {
		cache := testCache()
		for i := 7; i >= 1; i-- {
			cache.Logs = append(cache.Logs, &domain.Log{
				ID:     int64(9000 + i),
				Date:   fmt.Sprintf("2021-01-0%dT00:00:00", i),
				Type:   "Found it",
				Finder: domain.Cacher{GCID: "88", Name: "finder"},
			})
		}

		source := &staticSource{caches: map[int64]*domain.Cache{4242: cache}}
		out, err := testExporter(source).Export(ExportOptions{List: []int64{4242}, MaxLogs: 3})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		root := parseExport(t, out)
		logs := root.FindElements("wpt/groundspeak:cache/groundspeak:logs/groundspeak:log")
		if len(logs) != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%d", len(logs))
		}
		for i, want := range []string{"9001", "9002", "9003"} {
			if got := logs[i].SelectAttrValue("id", ""); got != want {
				t.Fatalf("\nwanted:\n%q at %d\ngot:\n%q", want, i, got)
			}
		}
	})

	t.Run("should omit the logs block when max logs is zero", func(t *testing.T) {
		cache := testCache()
		cache.Logs = []*domain.Log{{ID: 9001, Date: "2021-01-01", Type: "Found it"}}

		source := &staticSource{caches: map[int64]*domain.Cache{4242: cache}}
		out, err := testExporter(source).Export(ExportOptions{List: []int64{4242}, MaxLogs: 0})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		root := parseExport(t, out)
		if root.FindElement("wpt/groundspeak:cache/groundspeak:logs") != nil {
			t.Fatalf("\nwanted:\nno logs block\ngot:\none")
		}
	})

	t.Run("should emit satellite waypoints as top level siblings", func(t *testing.T) {
		source := &staticSource{
			caches: map[int64]*domain.Cache{4242: testCache()},
			satellites: map[string][]*domain.Waypoint{
				"GC1D3F": {{Lat: 15, Lon: 18, Name: "PK1D3F", GCCode: "GC1D3F", Sym: "Parking Area"}},
			},
		}

		out, err := testExporter(source).Export(ExportOptions{List: []int64{4242}, Waypoints: true})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		root := parseExport(t, out)
		wpts := root.SelectElements("wpt")
		if len(wpts) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(wpts))
		}
		if wpts[1].FindElement("groundspeak:cache") != nil {
			t.Fatalf("\nwanted:\nsatellite without nested cache\ngot:\nnested cache")
		}

		// Satellites widen the bounds too.
		bounds := root.SelectElement("bounds")
		if bounds.SelectAttrValue("maxlat", "") != "15" || bounds.SelectAttrValue("minlon", "") != "18" {
			t.Fatalf("\nwanted:\nmaxlat=15 minlon=18\ngot:\n%v", bounds.Attr)
		}
	})

	t.Run("should surface an unknown cache id", func(t *testing.T) {
		source := &staticSource{caches: map[int64]*domain.Cache{}}
		_, err := testExporter(source).Export(ExportOptions{List: []int64{999}})
		if !errors.Is(err, errNoSuchCache) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", errNoSuchCache, err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	cache := testCache()
	cache.Attributes = []*domain.Attribute{
		{GCID: 1, Inc: true, Name: "Dogs allowed"},
		{GCID: 7, Inc: false, Name: "Not available 24/7"},
	}
	cache.Logs = []*domain.Log{
		{ID: 9001, Date: "2021-01-01T00:00:00", Type: "Found it", Finder: domain.Cacher{GCID: "88", Name: "finder one"}, Text: "nice"},
		{ID: 9002, Date: "2021-03-01T00:00:00", Type: "Didn't find it", Finder: domain.Cacher{GCID: "89", Name: "finder two"}, Text: "nope"},
	}

	source := &staticSource{caches: map[int64]*domain.Cache{4242: cache}}
	out, err := testExporter(source).Export(ExportOptions{List: []int64{4242}, MaxLogs: 10})
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	store := newMemStore()
	importer := &Importer{Store: store}
	if err := importer.ImportBytes(out); err != nil {
		t.Fatalf("importing: %v", err)
	}

	got, err := store.GetCache(4242)
	if err != nil {
		t.Fatalf("loading imported cache: %v", err)
	}

	// Everything except surrogate ids and the recomputed last_logs field
	// survives the round trip.
	if got.Name != cache.Name || got.PlacedBy != cache.PlacedBy ||
		got.Type != cache.Type || got.Container != cache.Container ||
		got.Country != cache.Country || got.State != cache.State {
		t.Fatalf("\nwanted:\n%+v\ngot:\n%+v", cache, got)
	}
	if got.Available != cache.Available || got.Archived != cache.Archived {
		t.Fatalf("\nwanted:\n%v/%v\ngot:\n%v/%v", cache.Available, cache.Archived, got.Available, got.Archived)
	}
	if got.Difficulty != cache.Difficulty || got.Terrain != cache.Terrain {
		t.Fatalf("\nwanted:\n%v/%v\ngot:\n%v/%v", cache.Difficulty, cache.Terrain, got.Difficulty, got.Terrain)
	}
	if got.ShortDesc != cache.ShortDesc || got.LongDesc != cache.LongDesc ||
		got.ShortHTML != cache.ShortHTML || got.LongHTML != cache.LongHTML {
		t.Fatalf("\nwanted:\ndescriptions preserved\ngot:\n%+v", got)
	}
	if got.EncodedHints != cache.EncodedHints {
		t.Fatalf("\nwanted:\n%q\ngot:\n%q", cache.EncodedHints, got.EncodedHints)
	}
	if got.Owner.GCID != cache.Owner.GCID || got.Owner.Name != cache.Owner.Name {
		t.Fatalf("\nwanted:\n%+v\ngot:\n%+v", cache.Owner, got.Owner)
	}
	if got.Lat != cache.Lat || got.Lon != cache.Lon || got.GCID != cache.GCID {
		t.Fatalf("\nwanted:\nposition preserved\ngot:\n%+v", got)
	}
	if len(got.Attributes) != 2 {
		t.Fatalf("\nwanted:\n2 attributes\ngot:\n%d", len(got.Attributes))
	}
	if len(store.logs) != 2 {
		t.Fatalf("\nwanted:\n2 logs\ngot:\n%d", len(store.logs))
	}
	if got.LastLogs != "Didn't find it;Found it" {
		t.Fatalf("\nwanted:\n%q\ngot:\n%q", "Didn't find it;Found it", got.LastLogs)
	}
}
