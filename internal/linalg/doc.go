// Package linalg provides the dense complex linear algebra used by the
// simulator: row-major matrices, vectors, Kronecker products, matrix products
// and tolerance-based comparison.
//
// Everything here is deliberately dense. A 2ⁿ×2ⁿ operator costs O(4ⁿ) memory
// and a matrix-matrix product costs O(8ⁿ) time, which is the documented
// ceiling of the simulator.
//
// # Comparison
//
// Equality between numerical results is never exact. AllClose follows the
// numpy convention: two elements a and b are close when
//
//	|a - b| <= atol + rtol*|b|
//
// with DefaultRTol and DefaultATol used by callers that have no better choice.
package linalg
