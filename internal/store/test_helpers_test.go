package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/steam/internal/tables"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// smallTables returns a minimal valid dataset: two saturation rows and one
// superheated isobar.
func smallTables(t *testing.T) *tables.Tables {
	t.Helper()
	sat := []tables.SatSample{
		{T: 99.61, P: 100, Hf: 417.51, Hg: 2675.0, Sf: 1.3028, Sg: 7.3589, Vf: 0.001043, Vg: 1.6941},
		{T: 120.21, P: 200, Hf: 504.7, Hg: 2706.3, Sf: 1.5302, Sg: 7.1270, Vf: 0.001061, Vg: 0.88578},
	}
	super := []tables.SuperSample{
		{T: 99.61, P: 100, H: 2675.0, S: 7.3589},
		{T: 150, P: 100, H: 2776.6, S: 7.6148},
		{T: 200, P: 100, H: 2875.5, S: 7.8356},
	}
	tbl, err := tables.New(sat, super)
	if err != nil {
		t.Fatalf("tables.New() failed: %v", err)
	}
	return tbl
}
