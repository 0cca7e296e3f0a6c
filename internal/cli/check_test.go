package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAgrees(t *testing.T) {
	out, _, err := executeCommand(t, "check", "testdata/ghz.qasm")
	require.NoError(t, err)
	assert.Contains(t, out, "agrees with the reference")
	assert.NotContains(t, out, "unitary deviation")
}

func TestCheckUnitaryJSON(t *testing.T) {
	out, _, err := executeCommand(t, "--format", "json", "check", "--unitary", "testdata/bell.yaml")
	require.NoError(t, err)

	var result CheckResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Agrees)
	assert.Less(t, result.StateDeviation, 1e-12)
	require.NotNil(t, result.UnitaryDeviation)
	assert.Less(t, *result.UnitaryDeviation, 1e-12)
	assert.Equal(t, DefaultCheckTolerance, result.Tolerance)
}

func TestCheckInvalidCircuit(t *testing.T) {
	out, _, err := executeCommand(t, "check", "testdata/unsupported.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E200]")
}

func TestMaxDeviation(t *testing.T) {
	assert.Equal(t, 0.0, maxDeviation([]complex128{1, 1i}, []complex128{1, 1i}))
	assert.InDelta(t, 0.5, maxDeviation([]complex128{1, 0}, []complex128{1, 0.5i}), 1e-15)
	assert.Equal(t, 1.0, maxDeviation([]complex128{1}, []complex128{1, 0}))
}
