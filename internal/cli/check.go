package cli

import (
	"fmt"
	"io"
	"math/cmplx"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/reference"
)

// DefaultCheckTolerance is the largest per-amplitude deviation check accepts.
const DefaultCheckTolerance = 1e-9

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Unitary   bool
	Tolerance float64
}

// CheckResult is the output of the check command.
type CheckResult struct {
	CircuitID      string  `json:"circuit_id"`
	Qubits         int     `json:"qubits"`
	Depth          int     `json:"depth"`
	Tolerance      float64 `json:"tolerance"`
	StateDeviation float64 `json:"state_deviation"`

	// UnitaryDeviation is set only with --unitary.
	UnitaryDeviation *float64 `json:"unitary_deviation,omitempty"`
	Agrees           bool     `json:"agrees"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <circuit-file>",
		Short: "Compare the layered engine with the reference simulator",
		Long: `Evaluate a circuit with the layered engine and with the per-gate
reference simulator, and report the largest amplitude deviation.

Exits 1 (E009) when the deviation exceeds --tolerance.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Unitary, "unitary", false, "also compare the full unitary")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", DefaultCheckTolerance, "maximum allowed deviation")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}

	eng := engine.New(engine.WithLogger(newLogger(opts.RootOptions, cmd)))
	p, err := eng.Compile(c)
	if err != nil {
		return circuitFailure(f, err)
	}
	psi, err := eng.ApplyToState(p, engine.ZeroState(c.Qubits))
	if err != nil {
		return circuitFailure(f, err)
	}
	want, err := reference.Simulate(c)
	if err != nil {
		return circuitFailure(f, err)
	}

	id, err := circuitIDOrFail(f, c)
	if err != nil {
		return err
	}

	result := CheckResult{
		CircuitID:      id,
		Qubits:         c.Qubits,
		Depth:          p.Depth(),
		Tolerance:      opts.Tolerance,
		StateDeviation: maxDeviation(psi, want),
	}
	result.Agrees = result.StateDeviation <= opts.Tolerance

	if opts.Unitary {
		u, err := eng.ComposeUnitary(p)
		if err != nil {
			return circuitFailure(f, err)
		}
		ref, err := reference.Unitary(c)
		if err != nil {
			return circuitFailure(f, err)
		}
		dev := maxDeviation(u.Data, ref.Data)
		result.UnitaryDeviation = &dev
		result.Agrees = result.Agrees && dev <= opts.Tolerance
	}

	if !result.Agrees {
		msg := fmt.Sprintf("engine and reference disagree (state deviation %.3g, tolerance %.3g)",
			result.StateDeviation, opts.Tolerance)
		if f.JSON() {
			if err := f.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: ErrCodeMismatch, Message: msg},
			}); err != nil {
				return err
			}
			e := NewExitError(ExitFailure, ErrCodeMismatch+": "+msg)
			e.reported = true
			return e
		}
		return f.Fail(ExitFailure, ErrCodeMismatch, msg, nil)
	}

	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ %s agrees with the reference (qubits=%d depth=%d)\n", path, result.Qubits, result.Depth)
		fmt.Fprintf(w, "  state deviation:   %.3g\n", result.StateDeviation)
		if result.UnitaryDeviation != nil {
			fmt.Fprintf(w, "  unitary deviation: %.3g\n", *result.UnitaryDeviation)
		}
		return nil
	})
}

// maxDeviation returns the largest |a[i]-b[i]|. Slices of different length
// never agree.
func maxDeviation(a, b []complex128) float64 {
	if len(a) != len(b) {
		return 1
	}
	var dev float64
	for i := range a {
		dev = max(dev, cmplx.Abs(a[i]-b[i]))
	}
	return dev
}
