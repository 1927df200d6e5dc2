package db

import (
	"database/sql"
	"fmt"

	"github.com/andibee/geodb/domain"
)

var _ domain.LogRepository = (*Repository)(nil)

// dbLog represents a log entry as stored in the database, joined with the
// type name and finder identity.
type dbLog struct {
	ID          int64           `db:"id"`
	CacheID     int64           `db:"cache_id"`
	Date        string          `db:"date"`
	TypeID      sql.NullInt64   `db:"type_id"`
	TypeName    sql.NullString  `db:"type_name"`
	FinderID    sql.NullInt64   `db:"finder_id"`
	FinderGCID  sql.NullString  `db:"finder_gc_id"`
	FinderName  sql.NullString  `db:"finder_name"`
	Text        string          `db:"text"`
	TextEncoded bool            `db:"text_encoded"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lon         sql.NullFloat64 `db:"lon"`
	ImportID    string          `db:"import_id"`
}

// toDomainLog converts a dbLog to a domain.Log.
func toDomainLog(dbLog *dbLog) *domain.Log {
	return &domain.Log{
		ID:       dbLog.ID,
		CacheID:  dbLog.CacheID,
		Date:     dbLog.Date,
		TypeID:   dbLog.TypeID.Int64,
		Type:     dbLog.TypeName.String,
		FinderID: dbLog.FinderID.Int64,
		Finder: domain.Cacher{
			ID:   dbLog.FinderID.Int64,
			GCID: dbLog.FinderGCID.String,
			Name: dbLog.FinderName.String,
		},
		Text:        dbLog.Text,
		TextEncoded: dbLog.TextEncoded,
		Lat:         floatPtr(dbLog.Lat),
		Lon:         floatPtr(dbLog.Lon),
		ImportID:    dbLog.ImportID,
	}
}

// GetLogs retrieves all logs of a cache, oldest first.
func (repo *Repository) GetLogs(cacheID int64) ([]*domain.Log, error) {
	var dbLogs []*dbLog
	query := `
		SELECT l.id, l.cache_id, l.date, l.type_id, l.finder_id, l.text,
		       l.text_encoded, l.lat, l.lon, l.import_id,
		       t.name AS type_name, f.gc_id AS finder_gc_id, f.name AS finder_name
		FROM log l
		LEFT JOIN log_type t ON t.id = l.type_id
		LEFT JOIN cacher f ON f.id = l.finder_id
		WHERE l.cache_id = ?
		ORDER BY l.date`

	err := repo.dbConn.Select(&dbLogs, query, cacheID)
	if err != nil {
		return nil, fmt.Errorf("retrieving logs for cache %d: %w", cacheID, err)
	}

	domainLogs := make([]*domain.Log, len(dbLogs))
	for i, dbLog := range dbLogs {
		domainLogs[i] = toDomainLog(dbLog)
	}
	return domainLogs, nil
}

// InsertLog saves a new log row within the import session.
// Like caches, logs are keyed by their external id; re-imports replace.
func (session *ImportSession) InsertLog(log *domain.Log) error {
	query := `INSERT OR REPLACE INTO log (id, cache_id, date, type_id, finder_id, text, text_encoded, lat, lon, import_id)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := session.tx.Exec(query,
		log.ID, log.CacheID, log.Date, nullID(log.TypeID), nullID(log.FinderID),
		log.Text, log.TextEncoded, nullFloat(log.Lat), nullFloat(log.Lon), log.ImportID)
	if err != nil {
		return fmt.Errorf("inserting log %d: %w", log.ID, err)
	}
	return nil
}
