package compiler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateValid(t *testing.T) {
	c := ir.NewCircuit(3).H(0).CX(0, 2).RX(0.5, 1).Apply("u3", []float64{1, 2, 3}, 2)
	assert.Empty(t, Validate(c))
	assert.NoError(t, Check(c))
}

func TestValidateEmptyCircuit(t *testing.T) {
	assert.Empty(t, Validate(ir.NewCircuit(1)))
}

func TestValidateQubitCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"zero", 0, false},
		{"negative", -2, false},
		{"one", 1, true},
		{"max", MaxQubits, true},
		{"over max", MaxQubits + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(ir.NewCircuit(tt.n))
			if tt.ok {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, ErrQubitCount, errs[0].Code)
			assert.Equal(t, -1, errs[0].Op)
		})
	}
}

func TestValidateGateFindings(t *testing.T) {
	tests := []struct {
		name string
		gate ir.Gate
		want []string
	}{
		{"index out of range", ir.Gate{Tag: "h", Qubits: []int{2}}, []string{ErrQubitRange}},
		{"negative index", ir.Gate{Tag: "x", Qubits: []int{-1}}, []string{ErrQubitRange}},
		{"single on two qubits", ir.Gate{Tag: "h", Qubits: []int{0, 1}}, []string{ErrGateArity}},
		{"controlled on one qubit", ir.Gate{Tag: "cx", Qubits: []int{0}}, []string{ErrGateArity}},
		{"duplicate qubits", ir.Gate{Tag: "cz", Qubits: []int{1, 1}}, []string{ErrDuplicateQubit}},
		{"missing param", ir.Gate{Tag: "rz", Qubits: []int{0}}, []string{ErrParamCount}},
		{"extra param", ir.Gate{Tag: "h", Qubits: []int{0}, Params: []float64{1}}, []string{ErrParamCount}},
		{"unknown tag", ir.Gate{Tag: "zz", Qubits: []int{0, 1}}, []string{ErrUnsupportedGate}},
		{"nan param", ir.Gate{Tag: "rx", Qubits: []int{0}, Params: []float64{math.NaN()}}, []string{ErrParamValue}},
		{"infinite param", ir.Gate{Tag: "u3", Qubits: []int{1}, Params: []float64{0, math.Inf(-1), 1}}, []string{ErrParamValue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ir.Circuit{Qubits: 2, Gates: []ir.Gate{tt.gate}}
			errs := Validate(c)
			assert.Equal(t, tt.want, codes(errs))
			for _, e := range errs {
				assert.Equal(t, 0, e.Op)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := &ir.Circuit{
		Qubits: 0,
		Gates: []ir.Gate{
			{Tag: "h", Qubits: []int{0}},
			{Tag: "zz", Qubits: []int{0}},
			{Tag: "rx", Qubits: []int{5}},
		},
	}
	errs := Validate(c)
	assert.Equal(t, []string{ErrQubitCount, ErrQubitRange, ErrUnsupportedGate, ErrQubitRange, ErrParamCount}, codes(errs))
	assert.Equal(t, 2, errs[3].Op)
}

func TestCheckRejectsNonFiniteParams(t *testing.T) {
	c := ir.NewCircuit(1).RX(math.Inf(1), 0)
	err := Check(c)
	require.Error(t, err)
	var ie *InvalidCircuitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrParamValue, ie.Code)

	_, err = Layers(c)
	assert.True(t, IsInvalidCircuit(err))

	errs := Validate(c)
	require.Len(t, errs, 1)
	assert.Equal(t, "params[0]", errs[0].Field)
}

func TestCheckReturnsTypedErrors(t *testing.T) {
	err := Check(&ir.Circuit{Qubits: 2, Gates: []ir.Gate{{Tag: "ZZ", Qubits: []int{0}}}})
	require.Error(t, err)
	assert.True(t, gates.IsUnsupported(err))
	assert.False(t, IsInvalidCircuit(err))

	err = Check(&ir.Circuit{Qubits: 2, Gates: []ir.Gate{{Tag: "h", Qubits: []int{3}}}})
	require.Error(t, err)
	assert.True(t, IsInvalidCircuit(err))
	var ie *InvalidCircuitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrQubitRange, ie.Code)
	assert.Equal(t, 0, ie.Op)
}

func TestValidationErrorFormat(t *testing.T) {
	e := ValidationError{Op: 3, Field: "params", Message: "rx takes 1 parameter(s), got 0", Code: ErrParamCount}
	assert.Equal(t, "[E206] gates[3].params: rx takes 1 parameter(s), got 0", e.Error())

	e = ValidationError{Op: -1, Field: "qubits", Message: "bad", Code: ErrQubitCount}
	assert.Equal(t, "[E201] qubits: bad", e.Error())
}

func TestInvalidCircuitErrorFormat(t *testing.T) {
	assert.Equal(t, "E203: gate 1: qubit 4 out of range [0, 2)",
		(&InvalidCircuitError{Code: ErrQubitRange, Op: 1, Message: "qubit 4 out of range [0, 2)"}).Error())
	assert.Equal(t, "E201: no qubits",
		(&InvalidCircuitError{Code: ErrQubitCount, Op: -1, Message: "no qubits"}).Error())
}
