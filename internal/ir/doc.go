// Package ir provides the circuit and layer types shared by every stage of
// the simulator.
//
// This package contains type definitions, construction helpers and the
// canonical circuit hash. All other internal packages import ir; ir imports
// nothing internal.
//
// Key conventions:
//   - Qubit q is bit q of a basis index (qubit 0 least significant)
//   - Two-qubit gates list their qubits as [control, target]
//   - Layer slots are ordered most-significant qubit first, the order in
//     which their matrices enter the Kronecker product
//   - All JSON and YAML field names use snake_case
package ir
