package qasm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/testutil"
)

func TestParseParam(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.5", 0.5},
		{"-1.25", -1.25},
		{"3.14e-2", 0.0314},
		{"pi", math.Pi},
		{"PI", math.Pi},
		{"-pi", -math.Pi},
		{"pi/2", math.Pi / 2},
		{"2pi", 2 * math.Pi},
		{"2*pi", 2 * math.Pi},
		{"3*pi/4", 3 * math.Pi / 4},
		{"-3 * pi / 4", -3 * math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseParam(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseParamInvalid(t *testing.T) {
	for _, in := range []string{"", "tau", "pi/0", "1/2", "x*pi", "nan", "NaN", "inf", "-Inf", "+infinity", "1e400"} {
		_, err := ParseParam(in)
		assert.Error(t, err, in)
	}
}

func TestFormatParam(t *testing.T) {
	assert.Equal(t, "pi", FormatParam(math.Pi))
	assert.Equal(t, "-pi/2", FormatParam(-math.Pi/2))
	assert.Equal(t, "pi/8", FormatParam(math.Pi/8))
	assert.Equal(t, "0", FormatParam(0))
	assert.Equal(t, "0.1", FormatParam(0.1))
	assert.Equal(t, "0.7853", FormatParam(0.7853))
}

func TestParse(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";

// Bell pair with a twist
qreg q[3];
creg c[3];

h q[0];
cx q[0], q[1];
rz(pi/4) q[2]; barrier q[0], q[1], q[2];
u3(pi/2, 0, -pi) q[1];
CZ q[2],q[0];
`
	c, err := Parse(src)
	require.NoError(t, err)

	require.Equal(t, 3, c.Qubits)
	require.Len(t, c.Gates, 5)
	assert.Equal(t, ir.Gate{Tag: "h", Qubits: []int{0}}, c.Gates[0])
	assert.Equal(t, ir.Gate{Tag: "cx", Qubits: []int{0, 1}}, c.Gates[1])
	assert.Equal(t, "rz", c.Gates[2].Tag)
	assert.InDelta(t, math.Pi/4, c.Gates[2].Params[0], 1e-15)
	assert.Len(t, c.Gates[3].Params, 3)
	assert.Equal(t, ir.Gate{Tag: "cz", Qubits: []int{2, 0}}, c.Gates[4])
}

func TestParseCustomRegisterName(t *testing.T) {
	c, err := Parse("qreg data[2];\nx data[1];\n")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, c.Gates[0].Qubits)

	_, err = Parse("qreg data[2];\nx q[1];\n")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"measure", "qreg q[1];\nh q[0];\nmeasure q[0] -> c[0];\n", 3},
		{"reset", "qreg q[1];\nreset q[0];\n", 2},
		{"gate before qreg", "h q[0];\n", 1},
		{"second qreg", "qreg q[1];\nqreg r[1];\n", 2},
		{"bad operand", "qreg q[2];\ncx q[0], 1;\n", 2},
		{"wrong arity", "qreg q[2];\nh q[0], q[1];\n", 2},
		{"missing param", "qreg q[1];\nrx q[0];\n", 2},
		{"bad param", "qreg q[1];\nrx(tau) q[0];\n", 2},
		{"nan param", "qreg q[1];\nh q[0];\nrx(nan) q[0];\n", 3},
		{"infinite param", "qreg q[1];\nu3(0, inf, 0) q[0];\n", 2},
		{"no qreg", "OPENQASM 2.0;\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseUnknownGateWrapsUnsupported(t *testing.T) {
	_, err := Parse("qreg q[2];\nswap q[0], q[1];\n")
	require.Error(t, err)
	assert.True(t, gates.IsUnsupported(err))
	assert.Contains(t, err.Error(), "qasm:2:")
}

func TestFormat(t *testing.T) {
	c := ir.NewCircuit(2).H(0).CX(0, 1).RX(math.Pi/2, 1).Apply("U2", []float64{0, 0.25}, 0)
	want := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];

h q[0];
cx q[0], q[1];
rx(pi/2) q[1];
u2(0, 0.25) q[0];
`
	assert.Equal(t, want, Format(c))
}

func TestRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		c := testutil.RandomCircuit(seed, 4, 30)
		back, err := Parse(Format(c))
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, c, back, "seed %d", seed)
	}
}
