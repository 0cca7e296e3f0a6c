package harness

import (
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Errors lists failed assertions. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Circuit is the evaluated circuit; CircuitID its content address.
	Circuit   *ir.Circuit `json:"-"`
	CircuitID string      `json:"circuit_id"`

	// Layers and State are empty when evaluation failed.
	Layers []ir.Layer    `json:"-"`
	State  linalg.Vector `json:"-"`

	// EvalErr is the evaluation failure, if any; ErrorCode its stable code.
	EvalErr   error  `json:"-"`
	ErrorCode string `json:"error_code,omitempty"`

	// Run is the run log entry written for a successful evaluation.
	Run *store.Run `json:"run,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
