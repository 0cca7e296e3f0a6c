// Package engine composes layered circuits into state vectors and unitaries.
//
// ARCHITECTURE:
//
// Compile runs the circuit through validation and the depth-layering pass and
// pairs the resulting layers with a fresh gate matrix table. The Program it
// returns is then evaluated in one of two ways:
//
//   - ApplyToState multiplies each layer operator into a state vector:
//     ψ = L_k · … · L_2 · L_1 · ψ0
//   - ComposeUnitary folds the layer operators into one matrix:
//     U = L_k · … · L_2 · L_1 (the identity when there are no layers)
//
// A layer operator is the Kronecker product of its slot matrices, taken in
// slot order starting from the 1×1 identity. Slots are stored highest qubit
// first, so the product needs no reordering: qubit q ends up as bit q of the
// basis index.
//
// Evaluation is single-threaded and deterministic. Errors abort evaluation;
// no partial results are returned.
//
// Memory is O(4^n) for a unitary and each unitary product is O(8^n), which is
// why compiler.MaxQubits caps the circuit width.
package engine
