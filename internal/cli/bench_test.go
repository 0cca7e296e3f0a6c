package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/bench"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

func TestBenchJSON(t *testing.T) {
	out, _, err := executeCommand(t, "--format", "json", "bench", "--min", "1", "--max", "3", "--check", "--unitary")
	require.NoError(t, err)

	var result BenchResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Measurements, 3)
	assert.False(t, result.Interrupted)
	for i, m := range result.Measurements {
		assert.Equal(t, i+1, m.Qubits)
		assert.Equal(t, 5*m.Qubits-1, m.Gates)
		assert.True(t, m.Checked)
		assert.True(t, m.Agrees)
	}
}

func TestBenchText(t *testing.T) {
	out, _, err := executeCommand(t, "bench", "--min", "2", "--max", "2", "--check")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "QUBITS"))
	assert.Contains(t, lines[0], "AGREES")
	assert.NotContains(t, lines[0], "UNITARY")
	assert.True(t, strings.HasPrefix(lines[1], "2 "))
	assert.Contains(t, lines[1], "true")
}

func TestBenchBadRange(t *testing.T) {
	_, _, err := executeCommand(t, "bench", "--min", "4", "--max", "2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBenchRecordsRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, _, err := executeCommand(t, "--db", db, "bench", "--min", "1", "--max", "2")
	require.NoError(t, err)

	out, _, err := executeCommand(t, "--db", db, "--format", "json", "history")
	require.NoError(t, err)

	var result HistoryResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Runs, 2)
	for i, r := range result.Runs {
		assert.Equal(t, store.OpBench, r.Operation)
		assert.Equal(t, i+1, r.Qubits)
		assert.Len(t, r.ResultHash, 64)
		assert.Equal(t, mustID(t, bench.Workload(i+1)), r.CircuitID)

		var m bench.Measurement
		require.NoError(t, r.DecodeResult(&m))
		assert.Equal(t, i+1, m.Qubits)
	}
}
