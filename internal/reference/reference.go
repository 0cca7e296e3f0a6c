// Package reference is an independent bitwise statevector simulator.
//
// It applies each gate in place by pairing amplitudes whose indices differ in
// the target bit, with no matrices, no layering and no gate table. Its only
// job is to cross-check the composition engine, so it shares nothing with it
// beyond the circuit types and tag parsing.
package reference

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// State is a statevector being evolved in place.
type State struct {
	Amplitudes linalg.Vector
	Qubits     int
}

// NewState returns |0…0⟩ over n qubits.
func NewState(n int) *State {
	amps := make(linalg.Vector, 1<<n)
	amps[0] = 1
	return &State{Amplitudes: amps, Qubits: n}
}

// Apply applies one gate. The gate must already be valid for the state.
func (s *State) Apply(g ir.Gate) error {
	k, err := gates.ParseKind(g.Tag)
	if err != nil {
		return err
	}

	if k.IsControlled() {
		control, target := g.Qubits[0], g.Qubits[1]
		switch k {
		case gates.KindCX:
			s.applyCX(control, target)
		case gates.KindCY:
			s.applyCY(control, target)
		case gates.KindCZ:
			s.applyCZ(control, target)
		}
		return nil
	}

	q := g.Qubits[0]
	p := g.Params
	switch k {
	case gates.KindID:
	case gates.KindX:
		s.applyX(q)
	case gates.KindZ:
		s.applyPhase(q, -1)
	case gates.KindS:
		s.applyPhase(q, 1i)
	case gates.KindSdg:
		s.applyPhase(q, -1i)
	case gates.KindT:
		s.applyPhase(q, expi(math.Pi/4))
	case gates.KindTdg:
		s.applyPhase(q, expi(-math.Pi/4))
	case gates.KindP, gates.KindU1:
		s.applyPhase(q, expi(p[0]))
	default:
		a, b, c, d, err := coefficients(k, p)
		if err != nil {
			return err
		}
		s.apply2x2(q, a, b, c, d)
	}
	return nil
}

// coefficients returns the 2×2 operator [[a, b], [c, d]] for the gates
// that mix |0⟩ and |1⟩.
func coefficients(k gates.Kind, p []float64) (a, b, c, d complex128, err error) {
	switch k {
	case gates.KindH:
		h := complex(1/math.Sqrt2, 0)
		return h, h, h, -h, nil
	case gates.KindY:
		return 0, -1i, 1i, 0, nil
	case gates.KindSX:
		return 0.5 + 0.5i, 0.5 - 0.5i, 0.5 - 0.5i, 0.5 + 0.5i, nil
	case gates.KindRX:
		cos, sin := halfAngle(p[0])
		return complex(cos, 0), complex(0, -sin), complex(0, -sin), complex(cos, 0), nil
	case gates.KindRY:
		cos, sin := halfAngle(p[0])
		return complex(cos, 0), complex(-sin, 0), complex(sin, 0), complex(cos, 0), nil
	case gates.KindRZ:
		return expi(-p[0] / 2), 0, 0, expi(p[0] / 2), nil
	case gates.KindU2:
		return u(math.Pi/2, p[0], p[1])
	case gates.KindU3, gates.KindU:
		return u(p[0], p[1], p[2])
	}
	return 0, 0, 0, 0, fmt.Errorf("reference: no kernel for %s", k)
}

func u(theta, phi, lambda float64) (a, b, c, d complex128, err error) {
	cos, sin := halfAngle(theta)
	c0, s0 := complex(cos, 0), complex(sin, 0)
	return c0, -expi(lambda) * s0, expi(phi) * s0, expi(phi+lambda) * c0, nil
}

func halfAngle(theta float64) (cos, sin float64) {
	return math.Cos(theta / 2), math.Sin(theta / 2)
}

func expi(x float64) complex128 {
	return cmplx.Exp(complex(0, x))
}

func (s *State) apply2x2(q int, a, b, c, d complex128) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			x0, x1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = a*x0 + b*x1
			s.Amplitudes[j] = c*x0 + d*x1
		}
	}
}

func (s *State) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyPhase multiplies every amplitude with bit q set by phase.
func (s *State) applyPhase(q int, phase complex128) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		}
	}
}

func (s *State) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *State) applyCY(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *State) applyCZ(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

// Simulate validates c and evolves |0…0⟩ through every gate.
func Simulate(c *ir.Circuit) (linalg.Vector, error) {
	if err := compiler.Check(c); err != nil {
		return nil, err
	}
	s := NewState(c.Qubits)
	if err := s.run(c); err != nil {
		return nil, err
	}
	return s.Amplitudes, nil
}

// Unitary builds the circuit unitary column by column: column i is the
// evolution of basis state |i⟩.
func Unitary(c *ir.Circuit) (linalg.Matrix, error) {
	if err := compiler.Check(c); err != nil {
		return linalg.Matrix{}, err
	}
	dim := c.Dim()
	u := linalg.NewMatrix(dim, dim)
	for col := 0; col < dim; col++ {
		s := &State{Amplitudes: linalg.Basis(dim, col), Qubits: c.Qubits}
		if err := s.run(c); err != nil {
			return linalg.Matrix{}, err
		}
		for row, a := range s.Amplitudes {
			u.Set(row, col, a)
		}
	}
	return u, nil
}

func (s *State) run(c *ir.Circuit) error {
	for i, g := range c.Gates {
		if err := s.Apply(g); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}
