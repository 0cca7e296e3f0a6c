package compiler

import (
	"errors"
	"fmt"
)

// Circuit validation error codes (E200-E299)
const (
	ErrUnsupportedGate = "E200" // gate tag not in the library
	ErrQubitCount      = "E201" // circuit qubit count outside [1, MaxQubits]
	ErrGateArity       = "E202" // gate acts on the wrong number of qubits
	ErrQubitRange      = "E203" // qubit index outside [0, n)
	ErrDuplicateQubit  = "E204" // control and target coincide
	ErrSpanCollision   = "E205" // two-qubit span encloses a busy qubit (strict mode)
	ErrParamCount      = "E206" // wrong number of gate parameters
	ErrParamValue      = "E207" // gate parameter is NaN or infinite
)

// InvalidCircuitError reports a circuit the layering engine refuses to
// process. Op is the offending gate index, -1 for circuit-level problems.
type InvalidCircuitError struct {
	Code    string
	Op      int
	Message string
}

// Error implements the error interface.
func (e *InvalidCircuitError) Error() string {
	if e.Op >= 0 {
		return fmt.Sprintf("%s: gate %d: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidCircuit returns true if err is or wraps an InvalidCircuitError.
func IsInvalidCircuit(err error) bool {
	var ie *InvalidCircuitError
	return errors.As(err, &ie)
}

// ValidationError is one finding of Validate.
type ValidationError struct {
	Op      int    `json:"op"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`

	cause error
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Op >= 0 {
		return fmt.Sprintf("[%s] gates[%d].%s: %s", e.Code, e.Op, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Unwrap exposes the gate library error behind an E200 finding.
func (e ValidationError) Unwrap() error {
	return e.cause
}

// Err converts the finding into the error the layering engine returns:
// the gate library's own error for unknown tags, *InvalidCircuitError for
// everything else.
func (e ValidationError) Err() error {
	if e.cause != nil {
		return e.cause
	}
	return &InvalidCircuitError{Code: e.Code, Op: e.Op, Message: e.Message}
}
