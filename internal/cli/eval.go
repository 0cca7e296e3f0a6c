package cli

import (
	"fmt"
	"io"
	"math/cmplx"
	"time"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

// negligible hides amplitudes below this magnitude unless --all is set.
const negligible = 1e-12

// EvalOptions holds flags shared by state and unitary.
type EvalOptions struct {
	*RootOptions
	Strict bool // report span collisions instead of flushing
	All    bool // state: include zero amplitudes
}

// Amplitude is one basis state of a statevector.
type Amplitude struct {
	Basis       string  `json:"basis"`
	Index       int     `json:"index"`
	Re          float64 `json:"re"`
	Im          float64 `json:"im"`
	Probability float64 `json:"probability"`
}

// StateResult is the output of the state command.
type StateResult struct {
	CircuitID  string                    `json:"circuit_id"`
	Qubits     int                       `json:"qubits"`
	Gates      int                       `json:"gates"`
	Depth      int                       `json:"depth"`
	Amplitudes []Amplitude               `json:"amplitudes"`
	PerQubit   []engine.QubitProbability `json:"qubit_probabilities"`
}

// UnitaryResult is the output of the unitary command.
type UnitaryResult struct {
	CircuitID string         `json:"circuit_id"`
	Qubits    int            `json:"qubits"`
	Gates     int            `json:"gates"`
	Depth     int            `json:"depth"`
	Rows      [][][2]float64 `json:"rows"` // rows[i][j] = [re, im]
	IsUnitary bool           `json:"is_unitary"`

	matrix linalg.Matrix
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "state <circuit-file>",
		Short: "Evolve |0…0⟩ through a circuit",
		Long: `Compute the final statevector of a circuit applied to |0…0⟩.

Basis states are written |q(n-1)…q0⟩. Amplitudes below 1e-12 are hidden
unless --all is given.

Examples:
  qgsim state bell.yaml
  qgsim state --all --format json ghz.qasm
  qgsim state --db runs.db circuit.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "show every amplitude, including zeros")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject two-qubit spans that enclose a busy qubit (E205)")

	return cmd
}

// NewUnitaryCommand creates the unitary command.
func NewUnitaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unitary <circuit-file>",
		Short: "Compose the full 2ⁿ×2ⁿ unitary of a circuit",
		Long: `Multiply every layer operator into the circuit's unitary.

Cost grows as 8ⁿ per layer; prefer state for anything beyond a handful of
qubits.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitary(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject two-qubit spans that enclose a busy qubit (E205)")

	return cmd
}

func newEngine(opts *EvalOptions, cmd *cobra.Command) *engine.Engine {
	engOpts := []engine.EngineOption{engine.WithLogger(newLogger(opts.RootOptions, cmd))}
	if opts.Strict {
		engOpts = append(engOpts, engine.WithStrictSpans())
	}
	return engine.New(engOpts...)
}

func runState(opts *EvalOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}

	eng := newEngine(opts, cmd)
	start := time.Now()
	p, err := eng.Compile(c)
	if err != nil {
		return circuitFailure(f, err)
	}
	psi, err := eng.ApplyToState(p, engine.ZeroState(c.Qubits))
	if err != nil {
		return circuitFailure(f, err)
	}
	elapsed := time.Since(start)

	id, err := circuitIDOrFail(f, c)
	if err != nil {
		return err
	}
	result := StateResult{
		CircuitID:  id,
		Qubits:     c.Qubits,
		Gates:      len(c.Gates),
		Depth:      p.Depth(),
		Amplitudes: amplitudes(psi, c.Qubits, opts.All),
		PerQubit:   engine.QubitProbabilities(psi, c.Qubits),
	}

	payload, err := store.EncodeResult(map[string]any{"amplitudes": pairs(psi)})
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, "encode result", err)
	}
	if err := recordRuns(cmd.Context(), opts.RootOptions, newLogger(opts.RootOptions, cmd), store.Run{
		CircuitID: id,
		Operation: store.OpState,
		Qubits:    c.Qubits,
		Gates:     len(c.Gates),
		Depth:     p.Depth(),
		Elapsed:   elapsed,
		Result:    payload,
	}); err != nil {
		return err
	}

	return f.Success(result, func(w io.Writer) error {
		return writeState(w, result)
	})
}

func runUnitary(opts *EvalOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}

	eng := newEngine(opts, cmd)
	start := time.Now()
	p, err := eng.Compile(c)
	if err != nil {
		return circuitFailure(f, err)
	}
	u, err := eng.ComposeUnitary(p)
	if err != nil {
		return circuitFailure(f, err)
	}
	elapsed := time.Since(start)

	id, err := circuitIDOrFail(f, c)
	if err != nil {
		return err
	}
	result := UnitaryResult{
		CircuitID: id,
		Qubits:    c.Qubits,
		Gates:     len(c.Gates),
		Depth:     p.Depth(),
		IsUnitary: u.IsUnitary(linalg.DefaultRTol, linalg.DefaultATol),
		matrix:    u,
	}
	for _, row := range u.Rows2D() {
		result.Rows = append(result.Rows, pairs(row))
	}

	var trace complex128
	for i := 0; i < u.Rows; i++ {
		trace += u.At(i, i)
	}
	payload, err := store.EncodeResult(map[string]any{
		"dim":        u.Rows,
		"is_unitary": result.IsUnitary,
		"trace":      [2]float64{real(trace), imag(trace)},
	})
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, "encode result", err)
	}
	if err := recordRuns(cmd.Context(), opts.RootOptions, newLogger(opts.RootOptions, cmd), store.Run{
		CircuitID: id,
		Operation: store.OpUnitary,
		Qubits:    c.Qubits,
		Gates:     len(c.Gates),
		Depth:     p.Depth(),
		Elapsed:   elapsed,
		Result:    payload,
	}); err != nil {
		return err
	}

	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "circuit %s  qubits=%d gates=%d depth=%d\n",
			shortID(result.CircuitID), result.Qubits, result.Gates, result.Depth)
		_, err := fmt.Fprint(w, result.matrix.String())
		return err
	})
}

func amplitudes(psi linalg.Vector, n int, all bool) []Amplitude {
	out := []Amplitude{}
	for i, a := range psi {
		if !all && cmplx.Abs(a) < negligible {
			continue
		}
		out = append(out, Amplitude{
			Basis:       linalg.BitString(i, n),
			Index:       i,
			Re:          real(a),
			Im:          imag(a),
			Probability: real(a)*real(a) + imag(a)*imag(a),
		})
	}
	return out
}

func pairs(v []complex128) [][2]float64 {
	out := make([][2]float64, len(v))
	for i, a := range v {
		out[i] = [2]float64{real(a), imag(a)}
	}
	return out
}

func writeState(w io.Writer, r StateResult) error {
	fmt.Fprintf(w, "circuit %s  qubits=%d gates=%d depth=%d\n", shortID(r.CircuitID), r.Qubits, r.Gates, r.Depth)
	for _, a := range r.Amplitudes {
		fmt.Fprintf(w, "|%s⟩  %-22s p=%s\n",
			a.Basis, linalg.FormatComplex(complex(a.Re, a.Im)), formatProb(a.Probability))
	}
	for q, p := range r.PerQubit {
		fmt.Fprintf(w, "q%d: P(1)=%s\n", q, formatProb(p.Prob1))
	}
	return nil
}

func formatProb(p float64) string {
	return linalg.FormatComplex(complex(p, 0))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
