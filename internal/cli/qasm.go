package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/qasm"
)

// QASMOptions holds flags for the qasm command.
type QASMOptions struct {
	*RootOptions
	Output string
}

// QASMResult is the JSON output of the qasm command.
type QASMResult struct {
	Source string `json:"source"`
	Output string `json:"output,omitempty"`
	QASM   string `json:"qasm,omitempty"`
}

// NewQASMCommand creates the qasm command.
func NewQASMCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QASMOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "qasm <circuit-file>",
		Short: "Convert a circuit to OpenQASM 2.0",
		Long: `Write a valid circuit in any supported format as OpenQASM 2.0.

The circuit is validated first; invalid circuits are not converted.

Examples:
  qgsim qasm bell.yaml
  qgsim qasm -o bell.qasm bell.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQASM(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runQASM(opts *QASMOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}
	if err := compiler.Check(c); err != nil {
		return circuitFailure(f, err)
	}

	src := qasm.Format(c)
	result := QASMResult{Source: path}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(src), 0644); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed,
				fmt.Sprintf("failed to write %s", opts.Output), err)
		}
		f.VerboseLog("wrote %s", opts.Output)
		result.Output = opts.Output
		return f.Success(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ wrote %s\n", opts.Output)
			return err
		})
	}

	result.QASM = src
	return f.Success(result, func(w io.Writer) error {
		_, err := io.WriteString(w, src)
		return err
	})
}
