package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/andibee/geodb/domain"
)

var _ domain.CacheRepository = (*Repository)(nil)

var (
	// ErrCacheNotFound is returned when no cache exists for a requested id.
	ErrCacheNotFound = errors.New("no cache with that id")
)

// dbCache represents a cache as stored in the database, joined with the
// display values of its owner and lookup references. The reference columns
// use sql.Null* types since a sparse document may leave any of them unset.
type dbCache struct {
	ID           int64          `db:"id"`
	Lat          float64        `db:"lat"`
	Lon          float64        `db:"lon"`
	GCID         string         `db:"gc_id"`
	Available    bool           `db:"available"`
	Archived     bool           `db:"archived"`
	Name         string         `db:"name"`
	PlacedBy     string         `db:"placed_by"`
	OwnerID      sql.NullInt64  `db:"owner_id"`
	OwnerGCID    sql.NullString `db:"owner_gc_id"`
	OwnerName    sql.NullString `db:"owner_name"`
	TypeID       sql.NullInt64  `db:"type_id"`
	TypeName     sql.NullString `db:"type_name"`
	ContainerID  sql.NullInt64  `db:"container_id"`
	Container    sql.NullString `db:"container_name"`
	CountryID    sql.NullInt64  `db:"country_id"`
	Country      sql.NullString `db:"country_name"`
	StateID      sql.NullInt64  `db:"state_id"`
	State        sql.NullString `db:"state_name"`
	Difficulty   float64        `db:"difficulty"`
	Terrain      float64        `db:"terrain"`
	ShortDesc    string         `db:"short_desc"`
	ShortHTML    bool           `db:"short_html"`
	LongDesc     string         `db:"long_desc"`
	LongHTML     bool           `db:"long_html"`
	EncodedHints string         `db:"encoded_hints"`
	LastLogs     string         `db:"last_logs"`
	ImportID     string         `db:"import_id"`
}

// toDomainCache converts a dbCache to a domain.Cache. The waypoint, attribute
// and log associations are hydrated separately.
func toDomainCache(dbCache *dbCache) *domain.Cache {
	return &domain.Cache{
		ID:        dbCache.ID,
		Lat:       dbCache.Lat,
		Lon:       dbCache.Lon,
		GCID:      dbCache.GCID,
		Available: dbCache.Available,
		Archived:  dbCache.Archived,
		Name:      dbCache.Name,
		PlacedBy:  dbCache.PlacedBy,
		OwnerID:   dbCache.OwnerID.Int64,
		Owner: domain.Cacher{
			ID:   dbCache.OwnerID.Int64,
			GCID: dbCache.OwnerGCID.String,
			Name: dbCache.OwnerName.String,
		},
		TypeID:       dbCache.TypeID.Int64,
		Type:         dbCache.TypeName.String,
		ContainerID:  dbCache.ContainerID.Int64,
		Container:    dbCache.Container.String,
		CountryID:    dbCache.CountryID.Int64,
		Country:      dbCache.Country.String,
		StateID:      dbCache.StateID.Int64,
		State:        dbCache.State.String,
		Difficulty:   dbCache.Difficulty,
		Terrain:      dbCache.Terrain,
		ShortDesc:    dbCache.ShortDesc,
		ShortHTML:    dbCache.ShortHTML,
		LongDesc:     dbCache.LongDesc,
		LongHTML:     dbCache.LongHTML,
		EncodedHints: dbCache.EncodedHints,
		LastLogs:     dbCache.LastLogs,
		ImportID:     dbCache.ImportID,
	}
}

// GetCache retrieves a cache by its external id with the owner, lookup
// display names, attributes, logs, and primary waypoint hydrated.
func (repo *Repository) GetCache(id int64) (*domain.Cache, error) {
	var dbCache dbCache
	query := `
		SELECT c.id, c.lat, c.lon, c.gc_id, c.available, c.archived, c.name,
		       c.placed_by, c.owner_id, c.type_id, c.container_id, c.country_id,
		       c.state_id, c.difficulty, c.terrain, c.short_desc, c.short_html,
		       c.long_desc, c.long_html, c.encoded_hints, c.last_logs, c.import_id,
		       o.gc_id AS owner_gc_id, o.name AS owner_name,
		       t.name AS type_name, cc.name AS container_name,
		       cn.name AS country_name, cs.name AS state_name
		FROM cache c
		LEFT JOIN cacher o ON o.id = c.owner_id
		LEFT JOIN cache_type t ON t.id = c.type_id
		LEFT JOIN cache_container cc ON cc.id = c.container_id
		LEFT JOIN cache_country cn ON cn.id = c.country_id
		LEFT JOIN cache_state cs ON cs.id = c.state_id
		WHERE c.id = ?`

	err := repo.dbConn.Get(&dbCache, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving cache %d: %w", id, err)
	}

	cache := toDomainCache(&dbCache)

	cache.Attributes, err = repo.getCacheAttributes(id)
	if err != nil {
		return nil, err
	}

	cache.Logs, err = repo.GetLogs(id)
	if err != nil {
		return nil, err
	}

	var dbWpt dbWaypoint
	err = repo.dbConn.Get(&dbWpt, waypointSelect+` WHERE w.cache_id = ?`, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("retrieving primary waypoint for cache %d: %w", id, err)
	}
	if err == nil {
		cache.Waypoint = toDomainWaypoint(&dbWpt)
	}

	return cache, nil
}

// dbAttribute represents an attribute row as stored in the database.
type dbAttribute struct {
	ID   int64  `db:"id"`
	GCID int64  `db:"gc_id"`
	Inc  bool   `db:"inc"`
	Name string `db:"name"`
}

// getCacheAttributes loads the attributes linked to a cache through the join table.
func (repo *Repository) getCacheAttributes(cacheID int64) ([]*domain.Attribute, error) {
	var dbAttributes []*dbAttribute
	query := `
		SELECT a.id, a.gc_id, a.inc, a.name
		FROM attribute a
		JOIN cache_to_attribute ca ON ca.attribute_id = a.id
		WHERE ca.cache_id = ?
		ORDER BY a.id`

	err := repo.dbConn.Select(&dbAttributes, query, cacheID)
	if err != nil {
		return nil, fmt.Errorf("retrieving attributes for cache %d: %w", cacheID, err)
	}

	attributes := make([]*domain.Attribute, len(dbAttributes))
	for i, dbAttr := range dbAttributes {
		attributes[i] = &domain.Attribute{
			ID:   dbAttr.ID,
			GCID: dbAttr.GCID,
			Inc:  dbAttr.Inc,
			Name: dbAttr.Name,
		}
	}
	return attributes, nil
}

// InsertCache saves a new cache row within the import session.
// The external id is the primary key; re-importing an existing cache replaces
// the row (last write wins).
func (session *ImportSession) InsertCache(cache *domain.Cache) error {
	query := `INSERT OR REPLACE INTO cache (id, lat, lon, gc_id, available, archived, name, placed_by,
	              owner_id, type_id, container_id, country_id, state_id, difficulty, terrain,
	              short_desc, short_html, long_desc, long_html, encoded_hints, last_logs, import_id)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := session.tx.Exec(query,
		cache.ID, cache.Lat, cache.Lon, cache.GCID, cache.Available, cache.Archived,
		cache.Name, cache.PlacedBy, nullID(cache.OwnerID), nullID(cache.TypeID),
		nullID(cache.ContainerID), nullID(cache.CountryID), nullID(cache.StateID),
		cache.Difficulty, cache.Terrain, cache.ShortDesc, cache.ShortHTML,
		cache.LongDesc, cache.LongHTML, cache.EncodedHints, cache.LastLogs, cache.ImportID)
	if err != nil {
		return fmt.Errorf("inserting cache %d: %w", cache.ID, err)
	}
	return nil
}

// LinkAttribute adds one row to the cache/attribute join table.
func (session *ImportSession) LinkAttribute(cacheID, attributeID int64) error {
	_, err := session.tx.Exec("INSERT INTO cache_to_attribute (cache_id, attribute_id) VALUES (?, ?)", cacheID, attributeID)
	if err != nil {
		return fmt.Errorf("linking attribute %d to cache %d: %w", attributeID, cacheID, err)
	}
	return nil
}
