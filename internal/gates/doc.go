// Package gates is the gate matrix library.
//
// Every supported gate is a variant of the closed Kind enum. The registry in
// kind.go binds each Kind to its tag, qubit arity, parameter count and matrix
// builder, so there is no string dispatch past ParseKind. An unknown tag is
// rejected there with an UnsupportedGateError.
//
// # Bit ordering
//
// Qubit q is bit q of a basis index, qubit 0 being least significant. In
// every Kronecker product the factor for the higher qubit is on the left.
// Controlled builds the matrix for a contiguous qubit span lo..hi under this
// convention, so the composition engine can drop it into a layer without any
// reordering.
//
// # Table
//
// Table memoizes matrices per circuit. Single-qubit entries are keyed by kind
// and parameters, controlled entries by kind and the signed target-control
// offset. A key, once filled, is never rewritten.
package gates
