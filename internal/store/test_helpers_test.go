package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kshitijdave/QuantumGateSim/internal/testutil"
)

// createTestStore opens a fresh store in a temp dir with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun builds a run with minimal required fields.
func createTestRun(circuitID string, op Operation) Run {
	return Run{
		CircuitID: circuitID,
		Operation: op,
		Qubits:    2,
		Gates:     2,
		Depth:     2,
		Elapsed:   3 * time.Millisecond,
		Result:    []byte(`{"norm":1}`),
	}
}
