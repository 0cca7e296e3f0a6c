package qasm

import (
	"fmt"
	"strings"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// Format writes a circuit as OpenQASM 2.0 over a register named q.
func Format(c *ir.Circuit) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.Qubits)

	for _, g := range c.Gates {
		tag := g.Tag
		if k, err := gates.ParseKind(tag); err == nil {
			tag = k.String()
		}
		sb.WriteString(tag)

		if len(g.Params) > 0 {
			parts := make([]string, len(g.Params))
			for i, p := range g.Params {
				parts[i] = FormatParam(p)
			}
			fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
		}

		for i, q := range g.Qubits {
			if i == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", q)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}
