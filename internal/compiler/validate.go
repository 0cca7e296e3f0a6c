package compiler

import (
	"fmt"
	"math"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// MaxQubits bounds the circuit width. A dense 14-qubit unitary already
// holds 2^28 complex128 entries (4 GiB).
const MaxQubits = 14

// Validate checks a circuit against the structural rules of the layering
// engine. Returns all findings (does not fail-fast).
func Validate(c *ir.Circuit) []ValidationError {
	var errs []ValidationError

	if c.Qubits < 1 || c.Qubits > MaxQubits {
		errs = append(errs, ValidationError{
			Op:      -1,
			Field:   "qubits",
			Message: fmt.Sprintf("qubit count %d outside [1, %d]", c.Qubits, MaxQubits),
			Code:    ErrQubitCount,
		})
	}

	for i, g := range c.Gates {
		errs = append(errs, validateGate(i, g, c.Qubits)...)
	}
	return errs
}

// Check is Validate in fail-fast form: nil, or the first finding as an error.
func Check(c *ir.Circuit) error {
	if errs := Validate(c); len(errs) > 0 {
		return errs[0].Err()
	}
	return nil
}

func validateGate(op int, g ir.Gate, n int) []ValidationError {
	k, err := gates.ParseKind(g.Tag)
	if err != nil {
		return []ValidationError{{
			Op:      op,
			Field:   "gate",
			Message: err.Error(),
			Code:    ErrUnsupportedGate,
			cause:   err,
		}}
	}

	var errs []ValidationError
	if len(g.Qubits) != k.Qubits() {
		errs = append(errs, ValidationError{
			Op:      op,
			Field:   "qubits",
			Message: fmt.Sprintf("%s acts on %d qubit(s), got %d", k, k.Qubits(), len(g.Qubits)),
			Code:    ErrGateArity,
		})
	}

	for j, q := range g.Qubits {
		if q < 0 || q >= n {
			errs = append(errs, ValidationError{
				Op:      op,
				Field:   fmt.Sprintf("qubits[%d]", j),
				Message: fmt.Sprintf("qubit %d out of range [0, %d)", q, n),
				Code:    ErrQubitRange,
			})
		}
	}

	if len(g.Qubits) == 2 && g.Qubits[0] == g.Qubits[1] {
		errs = append(errs, ValidationError{
			Op:      op,
			Field:   "qubits",
			Message: fmt.Sprintf("control and target are both qubit %d", g.Qubits[0]),
			Code:    ErrDuplicateQubit,
		})
	}

	if len(g.Params) != k.Params() {
		errs = append(errs, ValidationError{
			Op:      op,
			Field:   "params",
			Message: fmt.Sprintf("%s takes %d parameter(s), got %d", k, k.Params(), len(g.Params)),
			Code:    ErrParamCount,
		})
	}

	for j, p := range g.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			errs = append(errs, ValidationError{
				Op:      op,
				Field:   fmt.Sprintf("params[%d]", j),
				Message: fmt.Sprintf("parameter %v is not finite", p),
				Code:    ErrParamValue,
			})
		}
	}
	return errs
}
