package db

import (
	"os"
	"testing"

	"github.com/andibee/geodb/domain"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewGeocacheRepo(dbConn)

	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}

	return repo, teardown
}

func beginTestImport(t *testing.T, repo *Repository) domain.ImportStore {
	t.Helper()

	session, err := repo.BeginImport()
	if err != nil {
		t.Fatalf("beginning import session: %v", err)
	}
	return session
}

// testCache inserts a minimal cache with resolved references inside the given
// session and returns it.
func testCache(t *testing.T, session domain.ImportStore, id int64) *domain.Cache {
	t.Helper()

	ownerID, err := session.ResolveCacher("77", "tester")
	if err != nil {
		t.Fatalf("resolving owner: %v", err)
	}
	typeID, err := session.ResolveCacheType("Traditional Cache")
	if err != nil {
		t.Fatalf("resolving type: %v", err)
	}
	containerID, err := session.ResolveCacheContainer("Regular")
	if err != nil {
		t.Fatalf("resolving container: %v", err)
	}
	countryID, err := session.ResolveCacheCountry("Germany")
	if err != nil {
		t.Fatalf("resolving country: %v", err)
	}
	stateID, err := session.ResolveCacheState("Nordrhein-Westfalen")
	if err != nil {
		t.Fatalf("resolving state: %v", err)
	}

	cache := &domain.Cache{
		ID:           id,
		Lat:          51.5,
		Lon:          7.25,
		GCID:         "GC1D3F",
		Available:    true,
		Name:         "Lorem",
		PlacedBy:     "tester",
		OwnerID:      ownerID,
		TypeID:       typeID,
		ContainerID:  containerID,
		CountryID:    countryID,
		StateID:      stateID,
		Difficulty:   2,
		Terrain:      3.5,
		ShortDesc:    "Short text",
		LongDesc:     "<p>Long</p>",
		LongHTML:     true,
		EncodedHints: "under the bridge",
		LastLogs:     "Found it",
		ImportID:     "test-session",
	}
	if err := session.InsertCache(cache); err != nil {
		t.Fatalf("inserting cache: %v", err)
	}
	return cache
}
