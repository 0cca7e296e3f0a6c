// Package harness runs circuit scenarios as executable conformance tests.
//
// A scenario names a circuit (inline or in a file), evaluates it with the
// layered composition engine and checks assertions against the final state.
// Every run is recorded in a fresh in-memory run log with deterministic IDs
// and a step clock, so repeated runs produce identical results.
//
// # Scenario Format
//
//	name: bell
//	description: "H then CX entangles two qubits"
//	circuit:
//	  qubits: 2
//	  gates:
//	    - {gate: h, qubits: [0]}
//	    - {gate: cx, qubits: [0, 1]}
//	assertions:
//	  - type: depth
//	    depth: 2
//	  - type: probability
//	    basis: "11"
//	    probability: 0.5
//
// circuit_file may replace circuit; relative paths resolve against the
// scenario file's directory. Any format accepted by compiler.LoadFile works.
//
// # Assertion Types
//
//   - amplitude: basis plus amplitude [re] or [re, im]
//   - probability: basis plus probability
//   - qubit_probability: qubit plus probability of reading 1
//   - depth: number of layers
//   - norm: the final state has unit norm
//   - matches_reference: statevector and unitary agree with the reference simulator
//   - error: evaluation fails with the given code (E2xx or a runtime code)
//
// Basis strings list qubit n-1 first, as in |q(n-1)…q0⟩.
//
// # Golden Files
//
// RunWithGolden compares the scenario's layer plan against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
