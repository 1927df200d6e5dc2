package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andibee/geodb/domain"
)

var _ domain.ImportStore = (*ImportSession)(nil)

// ImportSession is the write surface of one GPX import. It wraps a single
// database transaction so that a failed import leaves the store untouched,
// and memoizes resolved natural keys so that repeated reference values within
// one document cost one lookup instead of one query each.
type ImportSession struct {
	tx *sqlx.Tx

	// Memoized surrogate ids, keyed per lookup table by display name.
	lookups map[string]map[string]int64
	// Memoized cacher ids by external gc id.
	cachers map[string]int64
	// Memoized attribute ids by full natural key.
	attributes map[attributeKey]int64
}

// attributeKey is the natural key of an attribute row.
type attributeKey struct {
	gcID int64
	inc  bool
	name string
}

// BeginImport opens a new transaction-backed import session.
// The session must be finished with Commit or Rollback; it must not be shared
// between concurrent imports.
func (repo *Repository) BeginImport() (domain.ImportStore, error) {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return nil, fmt.Errorf("beginning import transaction : %w", err)
	}
	return &ImportSession{
		tx:         tx,
		lookups:    make(map[string]map[string]int64),
		cachers:    make(map[string]int64),
		attributes: make(map[attributeKey]int64),
	}, nil
}

// Commit makes all writes of the session visible at once.
func (session *ImportSession) Commit() error {
	if err := session.tx.Commit(); err != nil {
		return fmt.Errorf("committing import : %w", err)
	}
	return nil
}

// Rollback discards every write of the session. Calling it after a successful
// Commit is a no-op, so it is safe to defer.
func (session *ImportSession) Rollback() error {
	if err := session.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back import : %w", err)
	}
	return nil
}
