package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <circuit-file>",
		Short: "Check a circuit without evaluating it",
		Long: `Report every structural problem in a circuit: qubit count, unknown gates,
arity, qubit indices, duplicate qubits and parameter counts. All findings
are listed, not just the first.

With --strict the layer plan is also built so span collisions (E205) are
reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "also check for span collisions (E205)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}

	findings := compiler.Validate(c)
	if len(findings) == 0 && opts.Strict {
		if _, err := compiler.Layers(c, compiler.WithStrictSpans()); err != nil {
			var ie *compiler.InvalidCircuitError
			if errors.As(err, &ie) {
				findings = append(findings, compiler.ValidationError{
					Op:      ie.Op,
					Field:   "qubits",
					Message: ie.Message,
					Code:    ie.Code,
				})
			} else {
				return circuitFailure(f, err)
			}
		}
	}

	if len(findings) > 0 {
		return outputValidationErrors(f, findings)
	}

	return f.Success(ValidationResult{Valid: true}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ %s is valid (%d qubit(s), %d gate(s))\n", path, c.Qubits, len(c.Gates))
		return err
	})
}

func outputValidationErrors(f *OutputFormatter, findings []compiler.ValidationError) error {
	msg := fmt.Sprintf("%d validation error(s)", len(findings))
	if f.JSON() {
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: findings},
			Error:  &CLIError{Code: findings[0].Code, Message: msg},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "✗ %s\n", msg)
		for _, e := range findings {
			fmt.Fprintf(f.Writer, "  %s\n", e.Error())
		}
	}
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("%s: %s", findings[0].Code, msg))
	exitErr.reported = true
	return exitErr
}
