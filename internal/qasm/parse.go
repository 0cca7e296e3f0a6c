// Package qasm reads and writes the OpenQASM 2.0 subset the simulator
// understands: one quantum register, single-qubit gates with optional
// parameters and the controlled gates cx, cy and cz.
package qasm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// Pre-compiled regexps for QASM parsing.
var (
	headerRegex  = regexp.MustCompile(`^OPENQASM\s+2(?:\.\d+)?$`)
	includeRegex = regexp.MustCompile(`^include\s+"[^"]*"$`)
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	barrierRegex = regexp.MustCompile(`^barrier(?:\s+.*)?$`)
	gateRegex    = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	operandRegex = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
)

// ParseError reports a statement the reader cannot accept.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("qasm:%d: %s", e.Line, e.Message)
}

// Unwrap exposes the underlying gate library error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads an OpenQASM 2.0 program into a circuit.
//
// Comments, the header, include lines, creg declarations and barriers are
// accepted and ignored. Exactly one qreg must be declared before the first
// gate. measure, reset, if, custom gate definitions and anything else not
// listed above are rejected.
func Parse(src string) (*ir.Circuit, error) {
	p := &parser{}
	for i, line := range strings.Split(src, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := p.statement(i+1, stmt); err != nil {
				return nil, err
			}
		}
	}
	if p.circuit == nil {
		return nil, &ParseError{Line: 0, Message: "no qreg declared"}
	}
	return p.circuit, nil
}

type parser struct {
	circuit *ir.Circuit
	reg     string
}

func (p *parser) statement(line int, stmt string) error {
	switch {
	case headerRegex.MatchString(stmt), includeRegex.MatchString(stmt),
		cregRegex.MatchString(stmt), barrierRegex.MatchString(stmt):
		return nil
	}

	if m := qregRegex.FindStringSubmatch(stmt); m != nil {
		if p.circuit != nil {
			return &ParseError{Line: line, Message: "only one qreg is supported"}
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return &ParseError{Line: line, Message: fmt.Sprintf("invalid register size %q", m[2])}
		}
		p.reg = m[1]
		p.circuit = ir.NewCircuit(n)
		return nil
	}

	m := gateRegex.FindStringSubmatch(stmt)
	if m == nil {
		return &ParseError{Line: line, Message: fmt.Sprintf("unsupported statement %q", stmt)}
	}
	return p.gate(line, m[1], m[2], m[3])
}

func (p *parser) gate(line int, tag, params, operands string) error {
	k, err := gates.ParseKind(tag)
	if err != nil {
		return &ParseError{Line: line, Message: err.Error(), Err: err}
	}
	if p.circuit == nil {
		return &ParseError{Line: line, Message: fmt.Sprintf("gate %s before qreg declaration", tag)}
	}

	g := ir.Gate{Tag: k.String()}

	if strings.TrimSpace(params) != "" {
		for _, part := range strings.Split(params, ",") {
			v, err := ParseParam(part)
			if err != nil {
				return &ParseError{Line: line, Message: err.Error()}
			}
			g.Params = append(g.Params, v)
		}
	}

	for _, op := range strings.Split(operands, ",") {
		om := operandRegex.FindStringSubmatch(strings.TrimSpace(op))
		if om == nil {
			return &ParseError{Line: line, Message: fmt.Sprintf("invalid operand %q", strings.TrimSpace(op))}
		}
		if om[1] != p.reg {
			return &ParseError{Line: line, Message: fmt.Sprintf("unknown register %q", om[1])}
		}
		q, err := strconv.Atoi(om[2])
		if err != nil {
			return &ParseError{Line: line, Message: fmt.Sprintf("invalid qubit index %q", om[2])}
		}
		g.Qubits = append(g.Qubits, q)
	}

	if len(g.Qubits) != k.Qubits() {
		return &ParseError{Line: line, Message: fmt.Sprintf("%s acts on %d qubit(s), got %d", k, k.Qubits(), len(g.Qubits))}
	}
	if len(g.Params) != k.Params() {
		return &ParseError{Line: line, Message: fmt.Sprintf("%s takes %d parameter(s), got %d", k, k.Params(), len(g.Params))}
	}

	p.circuit.Gates = append(p.circuit.Gates, g)
	return nil
}
