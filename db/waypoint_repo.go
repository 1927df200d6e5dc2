package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/andibee/geodb/domain"
)

var _ domain.WaypointRepository = (*Repository)(nil)

var (
	// ErrWaypointNotFound is returned when a waypoint is not found for a given id.
	ErrWaypointNotFound = errors.New("no waypoint with that id")
)

// dbWaypoint represents a waypoint as stored in the database, joined with the
// display names of its symbol and type lookups.
type dbWaypoint struct {
	ID       int64          `db:"id"`
	Lat      float64        `db:"lat"`
	Lon      float64        `db:"lon"`
	Time     string         `db:"time"`
	Name     string         `db:"name"`
	GCCode   string         `db:"gc_code"`
	Cmt      string         `db:"cmt"`
	Descr    string         `db:"descr"`
	URL      string         `db:"url"`
	URLName  string         `db:"urlname"`
	SymID    sql.NullInt64  `db:"sym_id"`
	SymName  sql.NullString `db:"sym_name"`
	TypeID   sql.NullInt64  `db:"type_id"`
	TypeName sql.NullString `db:"type_name"`
	CacheID  sql.NullInt64  `db:"cache_id"`
	ImportID string         `db:"import_id"`
}

// toDomainWaypoint converts a dbWaypoint to a domain.Waypoint.
func toDomainWaypoint(dbWpt *dbWaypoint) *domain.Waypoint {
	wpt := &domain.Waypoint{
		ID:       dbWpt.ID,
		Lat:      dbWpt.Lat,
		Lon:      dbWpt.Lon,
		Time:     dbWpt.Time,
		Name:     dbWpt.Name,
		GCCode:   dbWpt.GCCode,
		Cmt:      dbWpt.Cmt,
		Desc:     dbWpt.Descr,
		URL:      dbWpt.URL,
		URLName:  dbWpt.URLName,
		SymID:    dbWpt.SymID.Int64,
		Sym:      dbWpt.SymName.String,
		TypeID:   dbWpt.TypeID.Int64,
		Type:     dbWpt.TypeName.String,
		ImportID: dbWpt.ImportID,
	}
	if dbWpt.CacheID.Valid {
		cacheID := dbWpt.CacheID.Int64
		wpt.CacheID = &cacheID
	}
	return wpt
}

const waypointSelect = `
	SELECT w.id, w.lat, w.lon, w.time, w.name, w.gc_code, w.cmt, w.descr,
	       w.url, w.urlname, w.sym_id, w.type_id, w.cache_id, w.import_id,
	       s.name AS sym_name, t.name AS type_name
	FROM waypoint w
	LEFT JOIN waypoint_sym s ON s.id = w.sym_id
	LEFT JOIN waypoint_type t ON t.id = w.type_id`

// GetWaypoint retrieves a single waypoint by its surrogate id.
func (repo *Repository) GetWaypoint(id int64) (*domain.Waypoint, error) {
	var dbWpt dbWaypoint
	err := repo.dbConn.Get(&dbWpt, waypointSelect+` WHERE w.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWaypointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving waypoint %d: %w", id, err)
	}
	return toDomainWaypoint(&dbWpt), nil
}

// GetSatelliteWaypoints retrieves every waypoint sharing the given GC code
// that does not itself carry a cache. These are the parking, trailhead and
// similar points exported as top-level siblings of the primary waypoint.
func (repo *Repository) GetSatelliteWaypoints(gcCode string) ([]*domain.Waypoint, error) {
	var dbWaypoints []*dbWaypoint
	err := repo.dbConn.Select(&dbWaypoints, waypointSelect+` WHERE w.gc_code = ? AND w.cache_id IS NULL ORDER BY w.id`, gcCode)
	if err != nil {
		return nil, fmt.Errorf("retrieving satellite waypoints for %s: %w", gcCode, err)
	}

	domainWaypoints := make([]*domain.Waypoint, len(dbWaypoints))
	for i, dbWpt := range dbWaypoints {
		domainWaypoints[i] = toDomainWaypoint(dbWpt)
	}
	return domainWaypoints, nil
}

// InsertWaypoint saves a new waypoint row within the import session.
func (session *ImportSession) InsertWaypoint(wpt *domain.Waypoint) error {
	query := `INSERT INTO waypoint (lat, lon, time, name, gc_code, cmt, descr, url, urlname, sym_id, type_id, cache_id, import_id)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var cacheID sql.NullInt64
	if wpt.CacheID != nil {
		cacheID = sql.NullInt64{Int64: *wpt.CacheID, Valid: true}
	}

	result, err := session.tx.Exec(query,
		wpt.Lat, wpt.Lon, wpt.Time, wpt.Name, wpt.GCCode, wpt.Cmt, wpt.Desc,
		wpt.URL, wpt.URLName, nullID(wpt.SymID), nullID(wpt.TypeID), cacheID, wpt.ImportID)
	if err != nil {
		return fmt.Errorf("inserting waypoint %s: %w", wpt.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading new waypoint id for %s: %w", wpt.Name, err)
	}
	wpt.ID = id
	return nil
}
