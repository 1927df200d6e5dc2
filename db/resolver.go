package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// Lookup table names. Resolver queries interpolate these constants only,
// never caller input.
const (
	tableCacheType      = "cache_type"
	tableCacheContainer = "cache_container"
	tableCacheCountry   = "cache_country"
	tableCacheState     = "cache_state"
	tableWaypointSym    = "waypoint_sym"
	tableWaypointType   = "waypoint_type"
	tableLogType        = "log_type"
)

// resolveLookup returns the surrogate id for a display name in one of the
// lookup tables, inserting a new row the first time the name is seen.
// An explicit SELECT-then-INSERT is used instead of an upsert so the path is
// the same for every database and easy to reason about; the session memo means
// the SELECT runs at most once per key per import.
func (session *ImportSession) resolveLookup(table string, name string) (int64, error) {
	memo, ok := session.lookups[table]
	if !ok {
		memo = make(map[string]int64)
		session.lookups[table] = memo
	}
	if id, ok := memo[name]; ok {
		return id, nil
	}

	var id int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table)
	err := session.tx.Get(&id, query, name)
	if err == nil {
		memo[name] = id
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up %s %q: %w", table, name, err)
	}

	result, err := session.tx.Exec(fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), name)
	if err != nil {
		return 0, fmt.Errorf("inserting %s %q: %w", table, name, err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new %s id for %q: %w", table, name, err)
	}
	memo[name] = id
	return id, nil
}

// ResolveCacheType implements domain.Resolver.
func (session *ImportSession) ResolveCacheType(name string) (int64, error) {
	return session.resolveLookup(tableCacheType, name)
}

// ResolveCacheContainer implements domain.Resolver.
func (session *ImportSession) ResolveCacheContainer(name string) (int64, error) {
	return session.resolveLookup(tableCacheContainer, name)
}

// ResolveCacheCountry implements domain.Resolver.
func (session *ImportSession) ResolveCacheCountry(name string) (int64, error) {
	return session.resolveLookup(tableCacheCountry, name)
}

// ResolveCacheState implements domain.Resolver.
func (session *ImportSession) ResolveCacheState(name string) (int64, error) {
	return session.resolveLookup(tableCacheState, name)
}

// ResolveWaypointSym implements domain.Resolver.
func (session *ImportSession) ResolveWaypointSym(name string) (int64, error) {
	return session.resolveLookup(tableWaypointSym, name)
}

// ResolveWaypointType implements domain.Resolver.
func (session *ImportSession) ResolveWaypointType(name string) (int64, error) {
	return session.resolveLookup(tableWaypointType, name)
}

// ResolveLogType implements domain.Resolver.
func (session *ImportSession) ResolveLogType(name string) (int64, error) {
	return session.resolveLookup(tableLogType, name)
}

// ResolveCacher implements domain.Resolver. The natural key is the external
// gc id; the display name is refreshed on every re-sight so the stored row
// always carries the most recently seen name.
func (session *ImportSession) ResolveCacher(gcID string, name string) (int64, error) {
	if id, ok := session.cachers[gcID]; ok {
		_, err := session.tx.Exec("UPDATE cacher SET name = ? WHERE id = ?", name, id)
		if err != nil {
			return 0, fmt.Errorf("refreshing cacher %s name: %w", gcID, err)
		}
		return id, nil
	}

	var id int64
	err := session.tx.Get(&id, "SELECT id FROM cacher WHERE gc_id = ?", gcID)
	if err == nil {
		if _, err := session.tx.Exec("UPDATE cacher SET name = ? WHERE id = ?", name, id); err != nil {
			return 0, fmt.Errorf("refreshing cacher %s name: %w", gcID, err)
		}
		session.cachers[gcID] = id
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up cacher %s: %w", gcID, err)
	}

	result, err := session.tx.Exec("INSERT INTO cacher (gc_id, name) VALUES (?, ?)", gcID, name)
	if err != nil {
		return 0, fmt.Errorf("inserting cacher %s: %w", gcID, err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new cacher id for %s: %w", gcID, err)
	}
	session.cachers[gcID] = id
	return id, nil
}

// ResolveAttribute implements domain.Resolver. Attributes are deduplicated by
// their full (gc id, inc, name) triple since the same attribute kind appears
// both included and excluded across listings.
func (session *ImportSession) ResolveAttribute(gcID int64, inc bool, name string) (int64, error) {
	key := attributeKey{gcID: gcID, inc: inc, name: name}
	if id, ok := session.attributes[key]; ok {
		return id, nil
	}

	var id int64
	err := session.tx.Get(&id, "SELECT id FROM attribute WHERE gc_id = ? AND inc = ? AND name = ?", gcID, inc, name)
	if err == nil {
		session.attributes[key] = id
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up attribute %d %q: %w", gcID, name, err)
	}

	result, err := session.tx.Exec("INSERT INTO attribute (gc_id, inc, name) VALUES (?, ?, ?)", gcID, inc, name)
	if err != nil {
		return 0, fmt.Errorf("inserting attribute %d %q: %w", gcID, name, err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new attribute id for %d %q: %w", gcID, name, err)
	}
	session.attributes[key] = id
	return id, nil
}
