package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Operation names what a run computed.
type Operation string

const (
	OpState   Operation = "state"
	OpUnitary Operation = "unitary"
	OpBench   Operation = "bench"
)

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	switch op {
	case OpState, OpUnitary, OpBench:
		return true
	}
	return false
}

// Run is one row of the run log.
//
// ID and Seq are assigned by WriteRun; ResultHash is computed from the
// canonical Result.
type Run struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	CircuitID     string          `json:"circuit_id"`
	Operation     Operation       `json:"operation"`
	Qubits        int             `json:"qubits"`
	Gates         int             `json:"gates"`
	Depth         int             `json:"depth"`
	Elapsed       time.Duration   `json:"elapsed_ns"`
	Result        json.RawMessage `json:"result"`
	ResultHash    string          `json:"result_hash"`
	EngineVersion string          `json:"engine_version"`
}

func (r Run) String() string {
	return fmt.Sprintf("#%d %s %s q=%d gates=%d depth=%d %s",
		r.Seq, r.Operation, shortID(r.CircuitID), r.Qubits, r.Gates, r.Depth, r.Elapsed)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
