package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// Vector is a dense complex column vector.
type Vector []complex128

// Basis returns the length-dim vector that is 1 at index i and 0 elsewhere.
func Basis(dim, i int) Vector {
	v := make(Vector, dim)
	v[i] = 1
	return v
}

// KronVec returns the Kronecker product a ⊗ b.
func KronVec(a, b Vector) Vector {
	out := make(Vector, len(a)*len(b))
	for i, av := range a {
		base := i * len(b)
		for j, bv := range b {
			out[base+j] = av * bv
		}
	}
	return out
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// Probabilities returns |v[i]|² for every index.
func (v Vector) Probabilities() []float64 {
	out := make([]float64, len(v))
	for i, a := range v {
		out[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return out
}

// VecAllClose reports whether a and b have equal length and are element-wise
// close under the same rule as AllClose.
func VecAllClose(a, b Vector, rtol, atol float64) bool {
	return closeSlices(a, b, rtol, atol)
}

// FormatComplex renders c compactly, e.g. "0.707107", "-1i", "0.5+0.5i".
// Components smaller than 1e-12 in magnitude are printed as zero.
func FormatComplex(c complex128) string {
	re, im := clean(real(c)), clean(imag(c))
	switch {
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	case im < 0:
		return formatFloat(re) + formatFloat(im) + "i"
	default:
		return formatFloat(re) + "+" + formatFloat(im) + "i"
	}
}

// Phase returns the argument of c in radians, 0 for negligible amplitudes.
func Phase(c complex128) float64 {
	if cmplx.Abs(c) < 1e-12 {
		return 0
	}
	return cmplx.Phase(c)
}

// BitString renders index i as an n-character binary string with qubit n-1
// leftmost, matching the usual |q(n-1)…q0⟩ ket notation.
func BitString(i, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", n, i)
}

func clean(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 0
	}
	return x
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
