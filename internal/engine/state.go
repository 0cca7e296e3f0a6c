package engine

import "github.com/kshitijdave/QuantumGateSim/internal/linalg"

var ket0 = linalg.Vector{1, 0}

// ZeroState returns |0…0⟩ over n qubits: length 2ⁿ, 1 at index 0.
func ZeroState(n int) linalg.Vector {
	return linalg.Basis(1<<n, 0)
}

// ZeroStateKron builds the same vector as ZeroState by folding |0⟩ ⊗ … ⊗ |0⟩
// from the scalar 1.
func ZeroStateKron(n int) linalg.Vector {
	psi := linalg.Vector{1}
	for i := 0; i < n; i++ {
		psi = linalg.KronVec(psi, ket0)
	}
	return psi
}

// BasisState returns the computational basis state whose bits spell i,
// qubit q being bit q.
func BasisState(n, i int) linalg.Vector {
	return linalg.Basis(1<<n, i)
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64 `json:"p0"`
	Prob1 float64 `json:"p1"`
}

// QubitProbabilities returns the per-qubit marginals of psi over n qubits.
func QubitProbabilities(psi linalg.Vector, n int) []QubitProbability {
	out := make([]QubitProbability, n)
	for i, p := range psi.Probabilities() {
		for q := 0; q < n; q++ {
			if i&(1<<q) != 0 {
				out[q].Prob1 += p
			} else {
				out[q].Prob0 += p
			}
		}
	}
	return out
}
