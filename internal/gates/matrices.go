package gates

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Fixed 2×2 matrices. Never handed out directly; fixed() clones them.
var (
	identity2 = linalg.Identity(2)

	hadamard = linalg.MustFromRows([][]complex128{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	})

	pauliX = linalg.MustFromRows([][]complex128{
		{0, 1},
		{1, 0},
	})

	pauliY = linalg.MustFromRows([][]complex128{
		{0, -1i},
		{1i, 0},
	})

	pauliZ = linalg.MustFromRows([][]complex128{
		{1, 0},
		{0, -1},
	})

	sGate   = diag(1i)
	sdgGate = diag(-1i)
	tGate   = diag(cmplx.Exp(complex(0, math.Pi/4)))
	tdgGate = diag(cmplx.Exp(complex(0, -math.Pi/4)))

	sxGate = linalg.MustFromRows([][]complex128{
		{0.5 + 0.5i, 0.5 - 0.5i},
		{0.5 - 0.5i, 0.5 + 0.5i},
	})

	// Control projectors |0⟩⟨0| and |1⟩⟨1|.
	proj0 = linalg.MustFromRows([][]complex128{
		{1, 0},
		{0, 0},
	})
	proj1 = linalg.MustFromRows([][]complex128{
		{0, 0},
		{0, 1},
	})
)

func fixed(m linalg.Matrix) func([]float64) linalg.Matrix {
	return func([]float64) linalg.Matrix { return m.Clone() }
}

// diag returns diag(1, d).
func diag(d complex128) linalg.Matrix {
	return linalg.MustFromRows([][]complex128{
		{1, 0},
		{0, d},
	})
}

func expi(x float64) complex128 {
	return cmplx.Exp(complex(0, x))
}

// phase is P(λ) = U1(λ) = diag(1, e^{iλ}).
func phase(p []float64) linalg.Matrix {
	return diag(expi(p[0]))
}

// u3 is U(θ, φ, λ).
func u3(p []float64) linalg.Matrix {
	theta, phi, lambda := p[0], p[1], p[2]
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return linalg.MustFromRows([][]complex128{
		{c, -expi(lambda) * s},
		{expi(phi) * s, expi(phi+lambda) * c},
	})
}

// u2 is U(π/2, φ, λ).
func u2(p []float64) linalg.Matrix {
	return u3([]float64{math.Pi / 2, p[0], p[1]})
}

func rx(p []float64) linalg.Matrix {
	c := complex(math.Cos(p[0]/2), 0)
	s := complex(0, -math.Sin(p[0]/2))
	return linalg.MustFromRows([][]complex128{
		{c, s},
		{s, c},
	})
}

func ry(p []float64) linalg.Matrix {
	c := complex(math.Cos(p[0]/2), 0)
	s := complex(math.Sin(p[0]/2), 0)
	return linalg.MustFromRows([][]complex128{
		{c, -s},
		{s, c},
	})
}

func rz(p []float64) linalg.Matrix {
	return linalg.MustFromRows([][]complex128{
		{expi(-p[0] / 2), 0},
		{0, expi(p[0] / 2)},
	})
}

// SingleQubit returns the 2×2 matrix of a single-qubit gate.
func SingleQubit(k Kind, params []float64) (linalg.Matrix, error) {
	s, ok := registry[k]
	if !ok || s.qubits != 1 {
		return linalg.Matrix{}, &UnsupportedGateError{Tag: k.String()}
	}
	if len(params) != s.params {
		return linalg.Matrix{}, &ParamError{Tag: s.tag, Want: s.params, Got: len(params)}
	}
	return s.single(params), nil
}

// Controlled returns the dense matrix of a controlled gate acting on the
// contiguous span between control and target inclusive, 2^(|c-t|+1) square.
//
// With k qubits strictly between the two and G the target operation:
//
//	control < target:  I ⊗ (I^⊗k ⊗ P0) + G ⊗ (I^⊗k ⊗ P1)
//	target < control:  (P0 ⊗ I^⊗k) ⊗ I + (P1 ⊗ I^⊗k) ⊗ G
//
// The leftmost factor belongs to the higher qubit.
func Controlled(k Kind, control, target int) (linalg.Matrix, error) {
	s, ok := registry[k]
	if !ok || s.qubits != 2 {
		return linalg.Matrix{}, fmt.Errorf("%w: %s", ErrNotControlled, k)
	}
	if control == target {
		return linalg.Matrix{}, fmt.Errorf("%w: control and target are both qubit %d", ErrNotControlled, control)
	}

	g := registry[s.target].single(nil)
	id := linalg.Identity(2)
	between := linalg.Identity(1 << (abs(target-control) - 1))

	var off, on linalg.Matrix
	if control < target {
		off = linalg.KronAll(id, between, proj0)
		on = linalg.KronAll(g, between, proj1)
	} else {
		off = linalg.KronAll(proj0, between, id)
		on = linalg.KronAll(proj1, between, g)
	}
	return linalg.Add(off, on)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
