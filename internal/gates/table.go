package gates

import (
	"fmt"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// tableKey identifies one memoized matrix. params is zero-padded; offset is
// target-control for controlled gates and 0 otherwise.
type tableKey struct {
	kind   Kind
	params [3]float64
	offset int
}

// Table is a lazily filled, per-circuit gate matrix cache.
//
// Not safe for concurrent use; the composition engine is single-threaded.
type Table struct {
	entries map[tableKey]linalg.Matrix
	hits    int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[tableKey]linalg.Matrix)}
}

// Lookup returns the matrix for a gate application, building and storing it
// on first use. For two-qubit gates the matrix spans the qubits between
// control and target inclusive.
//
// Callers must not modify the returned matrix.
func (t *Table) Lookup(g ir.Gate) (linalg.Matrix, error) {
	k, err := ParseKind(g.Tag)
	if err != nil {
		return linalg.Matrix{}, err
	}
	if len(g.Qubits) != k.Qubits() {
		return linalg.Matrix{}, fmt.Errorf("gate %q acts on %d qubit(s), got %d", g.Tag, k.Qubits(), len(g.Qubits))
	}
	if len(g.Params) != k.Params() {
		return linalg.Matrix{}, &ParamError{Tag: k.String(), Want: k.Params(), Got: len(g.Params)}
	}

	key := tableKey{kind: k}
	copy(key.params[:], g.Params)
	if k.IsControlled() {
		key.offset = g.Qubits[1] - g.Qubits[0]
	}

	if m, ok := t.entries[key]; ok {
		t.hits++
		return m, nil
	}

	var m linalg.Matrix
	if k.IsControlled() {
		m, err = Controlled(k, g.Qubits[0], g.Qubits[1])
	} else {
		m, err = SingleQubit(k, g.Params)
	}
	if err != nil {
		return linalg.Matrix{}, err
	}
	t.entries[key] = m
	return m, nil
}

// Len returns the number of distinct matrices built so far.
func (t *Table) Len() int {
	return len(t.entries)
}

// Hits returns how many lookups were served from the cache.
func (t *Table) Hits() int {
	return t.hits
}
