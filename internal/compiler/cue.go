package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// CircuitSchema is the CUE definition every .cue circuit file is unified
// with before it is compiled. Range and arity rules stay in Validate so that
// every input format reports them with the same codes.
const CircuitSchema = `
#Gate: {
	gate:    string
	qubits:  [...int]
	params?: [...number]
}

#Circuit: {
	qubits: int
	gates:  [...#Gate]
}
`

// CompileCUE unifies a CUE circuit document with CircuitSchema and compiles
// the result.
func CompileCUE(ctx *cue.Context, filename string, src []byte) (*ir.Circuit, error) {
	schema := ctx.CompileString(CircuitSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("circuit schema: %w", err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Circuit")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileCircuit(v)
}

// CompileCircuit parses a concrete CUE value into a Circuit.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The value should be the circuit struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`qubits: 2, gates: [{gate: "h", qubits: [0]}]`)
//	c, err := CompileCircuit(v)
func CompileCircuit(v cue.Value) (*ir.Circuit, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	qubitsVal := v.LookupPath(cue.ParsePath("qubits"))
	if !qubitsVal.Exists() {
		return nil, &CompileError{
			Field:   "qubits",
			Message: "qubit count is required",
			Pos:     v.Pos(),
		}
	}
	n, err := qubitsVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c := ir.NewCircuit(int(n))

	gatesVal := v.LookupPath(cue.ParsePath("gates"))
	if !gatesVal.Exists() {
		return c, nil
	}
	iter, err := gatesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		g, err := parseGate(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		c.Gates = append(c.Gates, g)
	}
	return c, nil
}

func parseGate(v cue.Value, i int) (ir.Gate, error) {
	var g ir.Gate

	tagVal := v.LookupPath(cue.ParsePath("gate"))
	if !tagVal.Exists() {
		return g, &CompileError{
			Field:   fmt.Sprintf("gates[%d].gate", i),
			Message: "gate tag is required",
			Pos:     v.Pos(),
		}
	}
	tag, err := tagVal.String()
	if err != nil {
		return g, formatCUEError(err)
	}
	g.Tag = tag

	qubitsVal := v.LookupPath(cue.ParsePath("qubits"))
	if !qubitsVal.Exists() {
		return g, &CompileError{
			Field:   fmt.Sprintf("gates[%d].qubits", i),
			Message: "qubit list is required",
			Pos:     v.Pos(),
		}
	}
	qIter, err := qubitsVal.List()
	if err != nil {
		return g, formatCUEError(err)
	}
	for qIter.Next() {
		q, err := qIter.Value().Int64()
		if err != nil {
			return g, formatCUEError(err)
		}
		g.Qubits = append(g.Qubits, int(q))
	}

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if paramsVal.Exists() {
		pIter, err := paramsVal.List()
		if err != nil {
			return g, formatCUEError(err)
		}
		for pIter.Next() {
			p, err := pIter.Value().Float64()
			if err != nil {
				return g, formatCUEError(err)
			}
			g.Params = append(g.Params, p)
		}
	}
	return g, nil
}

// CompileError represents a CUE compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// First error with position info wins.
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
