package ir

import (
	"fmt"
	"strings"
)

// IdentityTag is the tag carried by identity slots.
const IdentityTag = "id"

// Gate is one gate application: a tag, the qubits it acts on and its real
// parameters. Two-qubit gates list [control, target].
type Gate struct {
	Tag    string    `json:"gate" yaml:"gate"`
	Qubits []int     `json:"qubits" yaml:"qubits"`
	Params []float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

// Span returns the inclusive qubit range the gate occupies once collapsed
// into a layer slot. Callers must ensure Qubits is non-empty.
func (g Gate) Span() (lo, hi int) {
	lo, hi = g.Qubits[0], g.Qubits[0]
	for _, q := range g.Qubits[1:] {
		lo = min(lo, q)
		hi = max(hi, q)
	}
	return lo, hi
}

// String renders the gate in a compact QASM-like form, e.g. "rx(0.5) q[2]".
func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Tag)
	if len(g.Params) > 0 {
		sb.WriteByte('(')
		for i, p := range g.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", p)
		}
		sb.WriteByte(')')
	}
	for i, q := range g.Qubits {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}

// Circuit is an ordered list of gate applications over a fixed number of
// qubits. The core never mutates a circuit it is handed.
type Circuit struct {
	Qubits int    `json:"qubits" yaml:"qubits"`
	Gates  []Gate `json:"gates" yaml:"gates"`
}

// Dim returns the state space dimension 2ⁿ.
func (c *Circuit) Dim() int {
	return 1 << c.Qubits
}

// Slot is one tensor factor of a layer: the identity sentinel on a single
// qubit, or a gate whose matrix covers qubits Lo..Hi inclusive.
type Slot struct {
	Tag string `json:"gate"`
	Lo  int    `json:"lo"`
	Hi  int    `json:"hi"`

	// Op indexes Circuit.Gates; -1 for identity slots.
	Op int `json:"op"`
}

// IdentitySlot returns the identity sentinel for qubit q.
func IdentitySlot(q int) Slot {
	return Slot{Tag: IdentityTag, Lo: q, Hi: q, Op: -1}
}

// IsIdentity reports whether the slot is the identity sentinel.
func (s Slot) IsIdentity() bool {
	return s.Op < 0
}

// Width returns the number of qubits the slot covers.
func (s Slot) Width() int {
	return s.Hi - s.Lo + 1
}

// Dim returns the dimension of the slot's matrix.
func (s Slot) Dim() int {
	return 1 << s.Width()
}

// String renders "q0:h", "q1:id" or "q0..q2:cx".
func (s Slot) String() string {
	if s.Lo == s.Hi {
		return fmt.Sprintf("q%d:%s", s.Lo, s.Tag)
	}
	return fmt.Sprintf("q%d..q%d:%s", s.Lo, s.Hi, s.Tag)
}

// Layer is one depth layer, slots ordered from the most significant qubit
// down to qubit 0.
type Layer struct {
	Slots []Slot `json:"slots"`
}

// Dim returns the product of the slot dimensions.
func (l Layer) Dim() int {
	d := 1
	for _, s := range l.Slots {
		d *= s.Dim()
	}
	return d
}

// Ops returns the gate indices in the layer, lowest qubit first.
func (l Layer) Ops() []int {
	var ops []int
	for i := len(l.Slots) - 1; i >= 0; i-- {
		if !l.Slots[i].IsIdentity() {
			ops = append(ops, l.Slots[i].Op)
		}
	}
	return ops
}

// Reversed returns the slots in ascending qubit order (qubit 0 first), the
// order in which circuits are usually drawn and written.
func (l Layer) Reversed() []Slot {
	out := make([]Slot, len(l.Slots))
	for i, s := range l.Slots {
		out[len(l.Slots)-1-i] = s
	}
	return out
}

// String renders the layer in ascending qubit order.
func (l Layer) String() string {
	parts := make([]string, 0, len(l.Slots))
	for _, s := range l.Reversed() {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " ")
}
