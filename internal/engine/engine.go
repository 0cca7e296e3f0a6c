package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// Engine compiles and evaluates circuits.
//
// An Engine holds configuration only; every Compile gets its own gate table,
// so one Engine may be reused for any number of circuits.
type Engine struct {
	logger     *slog.Logger
	layerOpts  []compiler.Option
	strictSpan bool
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the logger used for compile and evaluation diagnostics.
// The default discards everything.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictSpans rejects two-qubit spans that enclose a busy qubit instead
// of starting a new layer. See compiler.WithStrictSpans.
func WithStrictSpans() EngineOption {
	return func(e *Engine) {
		e.strictSpan = true
	}
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.strictSpan {
		e.layerOpts = append(e.layerOpts, compiler.WithStrictSpans())
	}
	return e
}

// Program is a validated, layered circuit ready for evaluation.
type Program struct {
	Circuit *ir.Circuit
	Layers  []ir.Layer

	table *gates.Table
}

// Depth returns the number of layers.
func (p *Program) Depth() int {
	return len(p.Layers)
}

// Dim returns 2ⁿ.
func (p *Program) Dim() int {
	return p.Circuit.Dim()
}

// Table returns the program's gate matrix table.
func (p *Program) Table() *gates.Table {
	return p.table
}

// Compile validates and layers a circuit. The circuit is not copied and must
// not be modified while the Program is in use.
func (e *Engine) Compile(c *ir.Circuit) (*Program, error) {
	layers, err := compiler.Layers(c, e.layerOpts...)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("compiled circuit",
		"qubits", c.Qubits,
		"gates", len(c.Gates),
		"depth", len(layers))

	return &Program{Circuit: c, Layers: layers, table: gates.NewTable()}, nil
}

// LayerOperator expands one layer into its full 2ⁿ×2ⁿ operator: the 1×1
// identity Kronecker-multiplied by every slot matrix in slot order. Identity
// slots contribute the 2×2 identity; gate slots are looked up in t.
func LayerOperator(c *ir.Circuit, l ir.Layer, t *gates.Table) (linalg.Matrix, error) {
	return layerOperator(c, l, t, -1)
}

func layerOperator(c *ir.Circuit, l ir.Layer, t *gates.Table, index int) (linalg.Matrix, error) {
	if got := l.Dim(); got != c.Dim() {
		return linalg.Matrix{}, newLayerDimensionError(index, got, c.Dim())
	}

	op := linalg.Identity(1)
	for _, s := range l.Slots {
		m, err := slotMatrix(c, s, t)
		if err != nil {
			if re, ok := err.(*RuntimeError); ok {
				re.Layer = index
			}
			return linalg.Matrix{}, err
		}
		op = linalg.Kron(op, m)
	}
	return op, nil
}

func slotMatrix(c *ir.Circuit, s ir.Slot, t *gates.Table) (linalg.Matrix, error) {
	if s.IsIdentity() {
		return linalg.Identity(2), nil
	}
	if s.Op >= len(c.Gates) {
		return linalg.Matrix{}, &RuntimeError{
			Code:    ErrCodeSlotMismatch,
			Message: fmt.Sprintf("slot %s refers to gate %d of %d", s, s.Op, len(c.Gates)),
		}
	}

	m, err := t.Lookup(c.Gates[s.Op])
	if err != nil {
		return linalg.Matrix{}, fmt.Errorf("gate %d: %w", s.Op, err)
	}
	if m.Rows != s.Dim() {
		return linalg.Matrix{}, &RuntimeError{
			Code:    ErrCodeSlotMismatch,
			Message: fmt.Sprintf("slot %s has dimension %d, gate matrix %d", s, s.Dim(), m.Rows),
		}
	}
	return m, nil
}

// ApplyToState evolves psi0 through every layer: L_k · … · L_1 · psi0.
// psi0 is not modified.
func (e *Engine) ApplyToState(p *Program, psi0 linalg.Vector) (linalg.Vector, error) {
	if len(psi0) != p.Dim() {
		return nil, newStateDimensionError(len(psi0), p.Dim())
	}

	psi := psi0.Clone()
	for i, l := range p.Layers {
		op, err := layerOperator(p.Circuit, l, p.table, i)
		if err != nil {
			return nil, err
		}
		psi, err = linalg.MulVec(op, psi)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		e.debugLayer("applied layer", i, l)
	}

	e.logger.Debug("state evolved",
		"depth", len(p.Layers),
		"table_entries", p.table.Len(),
		"table_hits", p.table.Hits())
	return psi, nil
}

// ComposeUnitary folds every layer into one matrix: L_k · … · L_1.
// A program without layers yields the 2ⁿ identity.
func (e *Engine) ComposeUnitary(p *Program) (linalg.Matrix, error) {
	u := linalg.Identity(p.Dim())
	for i, l := range p.Layers {
		op, err := layerOperator(p.Circuit, l, p.table, i)
		if err != nil {
			return linalg.Matrix{}, err
		}
		u, err = linalg.Mul(op, u)
		if err != nil {
			return linalg.Matrix{}, fmt.Errorf("layer %d: %w", i, err)
		}
		e.debugLayer("composed layer", i, l)
	}

	e.logger.Debug("unitary composed",
		"depth", len(p.Layers),
		"table_entries", p.table.Len(),
		"table_hits", p.table.Hits())
	return u, nil
}

// debugLayer logs one evaluated layer. The layer is only rendered when
// debug logging is enabled.
func (e *Engine) debugLayer(msg string, index int, l ir.Layer) {
	if !e.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	e.logger.Debug(msg, "index", index, "layer", l.String())
}

// Statevector compiles c and applies it to |0…0⟩.
func (e *Engine) Statevector(c *ir.Circuit) (linalg.Vector, error) {
	p, err := e.Compile(c)
	if err != nil {
		return nil, err
	}
	return e.ApplyToState(p, ZeroState(c.Qubits))
}

// Unitary compiles c and composes its full unitary.
func (e *Engine) Unitary(c *ir.Circuit) (linalg.Matrix, error) {
	p, err := e.Compile(c)
	if err != nil {
		return linalg.Matrix{}, err
	}
	return e.ComposeUnitary(p)
}
