package compiler

import (
	"math"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

func TestCompileCUEBasic(t *testing.T) {
	src := `
qubits: 2
gates: [
	{gate: "h", qubits: [0]},
	{gate: "cx", qubits: [0, 1]},
	{gate: "rz", qubits: [1], params: [0.5]},
]
`
	c, err := CompileCUE(cuecontext.New(), "bell.cue", []byte(src))
	require.NoError(t, err)

	want := ir.NewCircuit(2).H(0).CX(0, 1).RZ(0.5, 1)
	assert.Equal(t, want, c)
}

func TestCompileCUEIntParamsAndMath(t *testing.T) {
	src := `
import "math"

qubits: 1
gates: [
	{gate: "u3", qubits: [0], params: [1, math.Pi / 2, 0]},
]
`
	c, err := CompileCUE(cuecontext.New(), "u3.cue", []byte(src))
	require.NoError(t, err)
	require.Len(t, c.Gates, 1)
	assert.Equal(t, 1.0, c.Gates[0].Params[0])
	assert.InDelta(t, math.Pi/2, c.Gates[0].Params[1], 1e-12)
}

func TestCompileCUEReusesDefinitions(t *testing.T) {
	src := `
_n: 4

qubits: _n
gates: [
	{gate: "h", qubits: [0]},
	for i in [0, 1, 2] {gate: "cx", qubits: [i, i + 1]},
]
`
	c, err := CompileCUE(cuecontext.New(), "ghz.cue", []byte(src))
	require.NoError(t, err)
	require.Len(t, c.Gates, 4)
	assert.Equal(t, []int{2, 3}, c.Gates[3].Qubits)
}

func TestCompileCUERejectsUnknownFields(t *testing.T) {
	src := `
qubits: 1
name: "not in the schema"
gates: []
`
	_, err := CompileCUE(cuecontext.New(), "extra.cue", []byte(src))
	require.Error(t, err)
}

func TestCompileCUERejectsWrongTypes(t *testing.T) {
	src := `
qubits: 1
gates: [{gate: "h", qubits: ["zero"]}]
`
	_, err := CompileCUE(cuecontext.New(), "types.cue", []byte(src))
	require.Error(t, err)
}

func TestCompileCUERejectsIncomplete(t *testing.T) {
	src := `
qubits: int
gates: []
`
	_, err := CompileCUE(cuecontext.New(), "open.cue", []byte(src))
	require.Error(t, err)
}

func TestCompileCUESyntaxError(t *testing.T) {
	_, err := CompileCUE(cuecontext.New(), "bad.cue", []byte(`qubits: {`))
	require.Error(t, err)
}

func TestCompileCircuitMissingQubits(t *testing.T) {
	v := cuecontext.New().CompileString(`gates: []`)
	require.NoError(t, v.Err())

	_, err := CompileCircuit(v)
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "qubits", ce.Field)
}

func TestCompileCircuitMissingGateTag(t *testing.T) {
	v := cuecontext.New().CompileString(`qubits: 1, gates: [{qubits: [0]}]`)
	require.NoError(t, v.Err())

	_, err := CompileCircuit(v)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "gates[0].gate", ce.Field)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "qubits", Message: "qubit count is required"}
	assert.Equal(t, "qubits: qubit count is required", err.Error())
}
