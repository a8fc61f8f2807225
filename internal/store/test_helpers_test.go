package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/synth"
)

// createTestStore creates a new file-backed store in a temp dir.
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

// synthesized returns the default circuit for distance d.
func synthesized(t *testing.T, d int) *circuit.Circuit {
	t.Helper()
	return synth.Synthesize(lattice.MustNew(d))
}
