package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
	"github.com/kshitijdave/QuantumGateSim/internal/testutil"
)

// clockStep is the duration every timed evaluation reports.
const clockStep = time.Millisecond

// Harness evaluates scenarios with a deterministic clock and run IDs.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.StepClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory run log for isolation.
// Evaluation failures are not returned as errors: they are recorded in the
// result for error assertions to inspect. The returned error reports harness
// problems only, such as an unreadable circuit file.
func Run(scenario *Scenario) (*Result, error) {
	c, err := resolveCircuit(scenario)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialIDGenerator()))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.DiscardHandler)
	opts := []engine.EngineOption{engine.WithLogger(logger)}
	if scenario.StrictSpans {
		opts = append(opts, engine.WithStrictSpans())
	}

	h := &Harness{
		store:  st,
		engine: engine.New(opts...),
		clock:  testutil.NewStepClock(clockStep),
		logger: logger,
	}

	result, err := h.evaluate(context.Background(), c)
	if err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, tolerance(scenario)) {
		result.AddError(msg)
	}
	return result, nil
}

func resolveCircuit(s *Scenario) (*ir.Circuit, error) {
	if s.Circuit != nil {
		return s.Circuit, nil
	}
	c, err := compiler.LoadFile(s.CircuitFile)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return c, nil
}

func tolerance(s *Scenario) float64 {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return DefaultTolerance
}

// evaluate compiles and runs c, then records the run. The circuit ID is
// computed even for circuits that fail to compile.
func (h *Harness) evaluate(ctx context.Context, c *ir.Circuit) (*Result, error) {
	result := NewResult()
	result.Circuit = c

	id, err := ir.CircuitID(c)
	if err != nil {
		return nil, fmt.Errorf("circuit id: %w", err)
	}
	result.CircuitID = id

	start := h.clock.Now()
	p, err := h.engine.Compile(c)
	if err != nil {
		h.fail(result, err)
		return result, nil
	}
	result.Layers = p.Layers

	psi, err := h.engine.ApplyToState(p, engine.ZeroState(c.Qubits))
	if err != nil {
		h.fail(result, err)
		return result, nil
	}
	result.State = psi
	elapsed := h.clock.Now().Sub(start)

	payload, err := store.EncodeResult(map[string]any{
		"probabilities": psi.Probabilities(),
	})
	if err != nil {
		return nil, err
	}
	run, err := h.store.WriteRun(ctx, store.Run{
		CircuitID: id,
		Operation: store.OpState,
		Qubits:    c.Qubits,
		Gates:     len(c.Gates),
		Depth:     p.Depth(),
		Elapsed:   elapsed,
		Result:    payload,
	})
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	result.Run = &run

	h.logger.Info("scenario evaluated",
		"circuit_id", id,
		"depth", p.Depth(),
		"run_id", run.ID)
	return result, nil
}

func (h *Harness) fail(result *Result, err error) {
	result.EvalErr = err
	result.ErrorCode = engine.ErrorCode(err)
	h.logger.Info("scenario evaluation failed", "code", result.ErrorCode, "error", err)
}
