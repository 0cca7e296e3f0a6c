package gates

import (
	"strings"

	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// Kind identifies a supported gate.
type Kind int

// Supported gates. KindInvalid is the zero value and never registered.
const (
	KindInvalid Kind = iota

	// Fixed single-qubit gates.
	KindID
	KindH
	KindX
	KindY
	KindZ
	KindS
	KindSdg
	KindT
	KindTdg
	KindSX

	// Parametrized single-qubit gates.
	KindP
	KindU1
	KindU2
	KindU3
	KindU
	KindRX
	KindRY
	KindRZ

	// Controlled two-qubit gates.
	KindCX
	KindCY
	KindCZ
)

// entry describes one registry row.
type entry struct {
	tag    string
	qubits int
	params int

	// single builds the 2×2 matrix of a single-qubit gate.
	single func(p []float64) linalg.Matrix

	// target is the single-qubit operation a controlled gate applies.
	target Kind
}

var registry = map[Kind]entry{
	KindID:  {tag: "id", qubits: 1, single: fixed(identity2)},
	KindH:   {tag: "h", qubits: 1, single: fixed(hadamard)},
	KindX:   {tag: "x", qubits: 1, single: fixed(pauliX)},
	KindY:   {tag: "y", qubits: 1, single: fixed(pauliY)},
	KindZ:   {tag: "z", qubits: 1, single: fixed(pauliZ)},
	KindS:   {tag: "s", qubits: 1, single: fixed(sGate)},
	KindSdg: {tag: "sdg", qubits: 1, single: fixed(sdgGate)},
	KindT:   {tag: "t", qubits: 1, single: fixed(tGate)},
	KindTdg: {tag: "tdg", qubits: 1, single: fixed(tdgGate)},
	KindSX:  {tag: "sx", qubits: 1, single: fixed(sxGate)},

	KindP:  {tag: "p", qubits: 1, params: 1, single: phase},
	KindU1: {tag: "u1", qubits: 1, params: 1, single: phase},
	KindU2: {tag: "u2", qubits: 1, params: 2, single: u2},
	KindU3: {tag: "u3", qubits: 1, params: 3, single: u3},
	KindU:  {tag: "u", qubits: 1, params: 3, single: u3},
	KindRX: {tag: "rx", qubits: 1, params: 1, single: rx},
	KindRY: {tag: "ry", qubits: 1, params: 1, single: ry},
	KindRZ: {tag: "rz", qubits: 1, params: 1, single: rz},

	KindCX: {tag: "cx", qubits: 2, target: KindX},
	KindCY: {tag: "cy", qubits: 2, target: KindY},
	KindCZ: {tag: "cz", qubits: 2, target: KindZ},
}

// byTag is the reverse index of registry.
var byTag = func() map[string]Kind {
	m := make(map[string]Kind, len(registry))
	for k, s := range registry {
		m[s.tag] = k
	}
	return m
}()

// ParseKind resolves a gate tag, ignoring case ("U" and "u" are the same
// gate). Unknown tags return an UnsupportedGateError.
func ParseKind(tag string) (Kind, error) {
	k, ok := byTag[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return KindInvalid, &UnsupportedGateError{Tag: tag}
	}
	return k, nil
}

// Kinds returns every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := KindID; k <= KindCZ; k++ {
		if _, ok := registry[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// String returns the canonical lower-case tag.
func (k Kind) String() string {
	if s, ok := registry[k]; ok {
		return s.tag
	}
	return "invalid"
}

// Qubits returns the number of qubits the gate acts on, 0 for KindInvalid.
func (k Kind) Qubits() int {
	return registry[k].qubits
}

// Params returns the number of real parameters the gate takes.
func (k Kind) Params() int {
	return registry[k].params
}

// IsControlled reports whether k is a controlled two-qubit gate.
func (k Kind) IsControlled() bool {
	return registry[k].qubits == 2
}
