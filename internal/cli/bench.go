package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/bench"
	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Min     int
	Max     int
	Unitary bool
	Check   bool
}

// BenchResult is the output of the bench command.
type BenchResult struct {
	Measurements []bench.Measurement `json:"measurements"`
	Interrupted  bool                `json:"interrupted,omitempty"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the engine against the reference simulator",
		Long: `Run a fixed workload (h, rx, ry, rz on every qubit, then a cx ladder) for
each qubit count in [--min, --max] and report compile+apply time, reference
simulation time and, with --unitary, unitary composition time.

Interrupting with Ctrl-C stops after the current size and prints what was
measured so far.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Min, "min", bench.DefaultMinQubits, "smallest qubit count")
	cmd.Flags().IntVar(&opts.Max, "max", bench.DefaultMaxQubits, "largest qubit count")
	cmd.Flags().BoolVar(&opts.Unitary, "unitary", false, "also time full unitary composition")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "compare every result with the reference simulator")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd)

	if opts.Min > opts.Max {
		return f.Fail(ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("--min (%d) is greater than --max (%d)", opts.Min, opts.Max), nil)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping after current size", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	ms, err := bench.Run(ctx, engine.New(), bench.Config{
		Sizes:   bench.Sizes(opts.Min, opts.Max),
		Unitary: opts.Unitary,
		Check:   opts.Check,
		Logger:  logger,
	})
	result := BenchResult{Measurements: ms}
	if result.Measurements == nil {
		result.Measurements = []bench.Measurement{}
	}
	switch {
	case errors.Is(err, context.Canceled):
		result.Interrupted = true
	case err != nil:
		return circuitFailure(f, err)
	}

	if err := recordBench(parentCtx, opts, logger, ms); err != nil {
		return err
	}

	if err := f.Success(result, func(w io.Writer) error {
		return writeBench(w, result, opts.Unitary, opts.Check)
	}); err != nil {
		return err
	}

	for _, m := range ms {
		if m.Checked && !m.Agrees {
			return NewExitError(ExitFailure,
				fmt.Sprintf("%s: engine and reference disagree at %d qubits", ErrCodeMismatch, m.Qubits))
		}
	}
	return nil
}

func recordBench(ctx context.Context, opts *BenchOptions, logger *slog.Logger, ms []bench.Measurement) error {
	if opts.DB == "" || len(ms) == 0 {
		return nil
	}
	runs := make([]store.Run, 0, len(ms))
	for _, m := range ms {
		payload, err := store.EncodeResult(m)
		if err != nil {
			return WrapExitError(ExitFailure, ErrCodeGeneric+": encode result", err)
		}
		runs = append(runs, store.Run{
			CircuitID: ir.MustCircuitID(bench.Workload(m.Qubits)),
			Operation: store.OpBench,
			Qubits:    m.Qubits,
			Gates:     m.Gates,
			Depth:     m.Depth,
			Elapsed:   m.State,
			Result:    payload,
		})
	}
	return recordRuns(ctx, opts.RootOptions, logger, runs...)
}

func writeBench(w io.Writer, r BenchResult, unitary, check bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "QUBITS\tGATES\tDEPTH\tSTATE\tREFERENCE"
	if unitary {
		header += "\tUNITARY"
	}
	if check {
		header += "\tAGREES"
	}
	fmt.Fprintln(tw, header)

	for _, m := range r.Measurements {
		line := fmt.Sprintf("%d\t%d\t%d\t%s\t%s", m.Qubits, m.Gates, m.Depth, m.State, m.Reference)
		if unitary {
			line += fmt.Sprintf("\t%s", m.Unitary)
		}
		if check {
			line += fmt.Sprintf("\t%t", m.Agrees)
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Interrupted {
		fmt.Fprintln(w, "(interrupted)")
	}
	return nil
}
