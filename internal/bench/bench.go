// Package bench times the composition engine against the reference
// simulator on a fixed, scalable workload.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
	"github.com/kshitijdave/QuantumGateSim/internal/reference"
)

// Default sweep bounds.
const (
	DefaultMinQubits = 5
	DefaultMaxQubits = 12
)

// Workload builds the benchmark circuit over n qubits: h, rx(π/4), ry(π/6)
// and rz(π/8) on every qubit, then a cx(i, i+1) ladder.
func Workload(n int) *ir.Circuit {
	c := ir.NewCircuit(n)
	for q := 0; q < n; q++ {
		c.H(q).RX(math.Pi/4, q).RY(math.Pi/6, q).RZ(math.Pi/8, q)
	}
	for q := 0; q+1 < n; q++ {
		c.CX(q, q+1)
	}
	return c
}

// Clock abstracts time.Now so tests can use a deterministic clock.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Config controls a benchmark sweep.
type Config struct {
	// Sizes lists the qubit counts to measure. Empty means
	// DefaultMinQubits..DefaultMaxQubits.
	Sizes []int

	// Unitary also times full unitary composition (O(8^n) per layer).
	Unitary bool

	// Check compares every engine result against the reference simulator.
	Check bool

	// Clock defaults to the wall clock.
	Clock Clock

	// Logger defaults to discarding.
	Logger *slog.Logger
}

// Measurement is the result for one circuit size.
type Measurement struct {
	Qubits    int           `json:"qubits"`
	Gates     int           `json:"gates"`
	Depth     int           `json:"depth"`
	State     time.Duration `json:"state_ns"`
	Reference time.Duration `json:"reference_ns"`
	Unitary   time.Duration `json:"unitary_ns,omitempty"`

	// Checked reports whether the reference comparison ran; Agrees is its
	// outcome.
	Checked bool `json:"checked"`
	Agrees  bool `json:"agrees"`
}

// Sizes expands an inclusive range, clamped to at least one qubit.
func Sizes(lo, hi int) []int {
	lo = max(lo, 1)
	var out []int
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out
}

// Run measures every configured size in order. Cancellation is honoured
// between sizes; measurements completed so far are returned with the
// context error.
func Run(ctx context.Context, eng *engine.Engine, cfg Config) ([]Measurement, error) {
	sizes := cfg.Sizes
	if len(sizes) == 0 {
		sizes = Sizes(DefaultMinQubits, DefaultMaxQubits)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = wallClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var out []Measurement
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		m, err := measure(eng, cfg, clock, n)
		if err != nil {
			return out, fmt.Errorf("%d qubits: %w", n, err)
		}
		logger.Info("measured",
			"qubits", m.Qubits,
			"depth", m.Depth,
			"state", m.State,
			"reference", m.Reference,
			"unitary", m.Unitary)
		out = append(out, m)
	}
	return out, nil
}

func measure(eng *engine.Engine, cfg Config, clock Clock, n int) (Measurement, error) {
	c := Workload(n)
	m := Measurement{Qubits: n, Gates: len(c.Gates)}

	start := clock.Now()
	p, err := eng.Compile(c)
	if err != nil {
		return m, err
	}
	psi, err := eng.ApplyToState(p, engine.ZeroState(n))
	if err != nil {
		return m, err
	}
	m.State = clock.Now().Sub(start)
	m.Depth = p.Depth()

	start = clock.Now()
	want, err := reference.Simulate(c)
	if err != nil {
		return m, err
	}
	m.Reference = clock.Now().Sub(start)

	var u linalg.Matrix
	if cfg.Unitary {
		start = clock.Now()
		u, err = eng.ComposeUnitary(p)
		if err != nil {
			return m, err
		}
		m.Unitary = clock.Now().Sub(start)
	}

	if cfg.Check {
		m.Checked = true
		m.Agrees = linalg.VecAllClose(psi, want, linalg.DefaultRTol, linalg.DefaultATol)
		if cfg.Unitary {
			fromU, err := linalg.MulVec(u, engine.ZeroState(n))
			if err != nil {
				return m, err
			}
			m.Agrees = m.Agrees && linalg.VecAllClose(fromU, want, linalg.DefaultRTol, linalg.DefaultATol)
		}
	}
	return m, nil
}
