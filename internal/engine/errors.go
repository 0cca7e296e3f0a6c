package engine

import (
	"errors"
	"fmt"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// RuntimeError represents an error detected while evaluating a program.
//
// Runtime errors indicate structural mismatches the compiler cannot catch:
// hand-built layers whose slots do not cover the circuit, or initial states
// of the wrong dimension.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Layer is the zero-based layer index, -1 when no layer is involved.
	Layer int
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeStateDimension indicates an initial state of the wrong length.
	ErrCodeStateDimension RuntimeErrorCode = "STATE_DIMENSION"

	// ErrCodeLayerDimension indicates a layer whose slots do not span 2^n.
	ErrCodeLayerDimension RuntimeErrorCode = "LAYER_DIMENSION"

	// ErrCodeSlotMismatch indicates a slot that disagrees with its gate.
	ErrCodeSlotMismatch RuntimeErrorCode = "SLOT_MISMATCH"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Layer >= 0 {
		return fmt.Sprintf("%s: %s (layer=%d)", e.Code, e.Message, e.Layer)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match linalg.ErrDimensionMismatch.
func (e *RuntimeError) Unwrap() error {
	return linalg.ErrDimensionMismatch
}

// IsDimensionError returns true if the error is a state or layer dimension
// mismatch. Uses errors.As to handle wrapped errors.
func IsDimensionError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeStateDimension || re.Code == ErrCodeLayerDimension
	}
	return false
}

// ErrorCode returns the stable code carried by err: an E2xx circuit code
// or a runtime code. Unclassified errors return "".
func ErrorCode(err error) string {
	var ie *compiler.InvalidCircuitError
	var re *RuntimeError
	var pe *gates.ParamError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ie):
		return ie.Code
	case gates.IsUnsupported(err):
		return compiler.ErrUnsupportedGate
	case errors.As(err, &pe):
		return compiler.ErrParamCount
	case errors.As(err, &re):
		return string(re.Code)
	}
	return ""
}

func newStateDimensionError(got, want int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeStateDimension,
		Message: fmt.Sprintf("initial state has length %d, want %d", got, want),
		Layer:   -1,
	}
}

func newLayerDimensionError(layer, got, want int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeLayerDimension,
		Message: fmt.Sprintf("slots span dimension %d, want %d", got, want),
		Layer:   layer,
	}
}
