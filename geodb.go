// Package geodb converts between the Groundspeak GPX dialect and a normalized
// SQLite store. It is designed to be decoupled from any GUI or CLI surface
// and provides the two document-level operations on top of the gpx codecs
// and the db repository:
//
//   - Export renders an ordered list of caches, their owners, attributes,
//     logs, and optionally satellite waypoints into a conformant GPX
//     document with computed geographic bounds.
//   - Import parses a GPX document, deduplicates repeated reference values
//     into lookup tables, and persists waypoints, caches, attributes, and
//     logs inside a single transaction.
package geodb

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/andibee/geodb/domain"
	"github.com/andibee/geodb/gpx"
)

// Repository defines the methods consumed by the service to interact with the
// SQLite backend. It provides the exporter's read surface and hands out
// transactional import sessions.
type Repository interface {
	GetCache(id int64) (*domain.Cache, error)
	GetWaypoint(id int64) (*domain.Waypoint, error)
	GetSatelliteWaypoints(gcCode string) ([]*domain.Waypoint, error)
	GetLogs(cacheID int64) ([]*domain.Log, error)
	BeginImport() (domain.ImportStore, error)
	Close() error
}

// Service is the central coordinator wiring the repository, the configuration,
// and the GPX codecs together.
type Service struct {
	Repo      Repository
	Config    Config
	ConfigDir string // The configuration directory holding config.yaml and the database file.
}

// New creates a Service and applies the given options in order.
func New(options ...func(*Service) error) (*Service, error) {
	svc := &Service{}
	if err := svc.WithOptions(options...); err != nil {
		return nil, err
	}
	return svc, nil
}

// WithOptions applies a series of configuration functions to the service.
// Each option function can modify the service and return an error if it fails.
func (svc *Service) WithOptions(options ...func(*Service) error) error {
	for _, option := range options {
		err := option(svc)
		if err != nil {
			return fmt.Errorf("applying option on geodb : %w", err)
		}
	}
	return nil
}

// Export renders the caches named by opts.List into a GPX document.
func (svc *Service) Export(opts gpx.ExportOptions) ([]byte, error) {
	exporter := gpx.NewExporter(svc.Repo)
	return exporter.Export(opts)
}

// ExportList renders the given caches using the configured defaults for the
// logs cap and satellite waypoints.
func (svc *Service) ExportList(ids []int64) ([]byte, error) {
	return svc.Export(gpx.ExportOptions{
		List:      ids,
		MaxLogs:   svc.Config.MaxLogs,
		Waypoints: svc.Config.IncludeWaypoints,
	})
}

// Import consumes one GPX document from r inside a single transaction.
// Each import runs under a fresh session id that is stamped on every row it
// creates. A failed import leaves the store untouched.
func (svc *Service) Import(r io.Reader) error {
	sessionID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("creating import session id : %w", err)
	}

	session, err := svc.Repo.BeginImport()
	if err != nil {
		return fmt.Errorf("beginning import session %s : %w", sessionID, err)
	}
	defer session.Rollback()

	log.Printf("[*] starting import session %s", sessionID)
	importer := &gpx.Importer{
		Store: session,
		Options: gpx.ImportOptions{
			Strict:    svc.Config.StrictImport,
			SessionID: sessionID.String(),
		},
	}
	if err := importer.Import(r); err != nil {
		return fmt.Errorf("import session %s : %w", sessionID, err)
	}
	return nil
}

// ImportFile imports one GPX document from disk.
func (svc *Service) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s : %w", path, err)
	}
	defer f.Close()
	return svc.Import(f)
}

// Close releases the repository.
func (svc *Service) Close() error {
	if svc.Repo == nil {
		return nil
	}
	return svc.Repo.Close()
}
