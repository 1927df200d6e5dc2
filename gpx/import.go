package gpx

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"

	"github.com/andibee/geodb/domain"
)

// ErrNotGPX is returned by strict imports when the input parses but its root
// element is not the namespace-qualified gpx tag.
var ErrNotGPX = errors.New("document root is not a gpx element")

// ImportOptions configures one import pass.
type ImportOptions struct {
	// Strict surfaces unparsable input and wrong root elements as errors.
	// The lenient default treats both as empty input and imports nothing;
	// that behavior masks genuine errors but downstream callers depend on
	// it, so it stays the default.
	Strict bool
	// SessionID is stamped on every row created by this import.
	SessionID string
}

// Importer parses GPX documents and persists their content through a single
// transactional store. Deeper structural and numeric errors always abort the
// import; the store's transaction is left uncommitted so the caller's
// Rollback leaves the database untouched.
type Importer struct {
	Store   domain.ImportStore
	Options ImportOptions
}

// Import consumes a document from r and commits once after the last waypoint.
func (imp *Importer) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading import source : %w", err)
	}
	return imp.ImportBytes(data)
}

// ImportBytes is Import over an in-memory document.
func (imp *Importer) ImportBytes(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		if imp.Options.Strict {
			return fmt.Errorf("parsing document (detected %s) : %w", mimetype.Detect(data), err)
		}
		return nil
	}

	root := doc.Root()
	if root == nil || root.Tag != "gpx" || root.NamespaceURI() != Namespace {
		if imp.Options.Strict {
			return ErrNotGPX
		}
		return nil
	}

	// Only direct wpt children count; any other top-level content is ignored.
	for _, el := range root.ChildElements() {
		if el.Tag == "wpt" && el.NamespaceURI() == Namespace {
			if err := imp.decodeWaypoint(el); err != nil {
				return err
			}
		}
	}

	return imp.Store.Commit()
}
