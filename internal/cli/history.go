package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit     int
	Circuit   string
	Operation string
	MinQubits int
	MaxQubits int
}

// HistoryResult is the output of the history command.
type HistoryResult struct {
	CircuitID string      `json:"circuit_id,omitempty"`
	Runs      []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the run log",
		Long: `Show runs recorded by state, unitary and bench in the --db run log, oldest
first.

Examples:
  qgsim history --db runs.db
  qgsim history --db runs.db --limit 5
  qgsim history --db runs.db --circuit bell.yaml
  qgsim history --db runs.db --op bench --min-qubits 8`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show only the most recent N runs (0 for all)")
	cmd.Flags().StringVar(&opts.Circuit, "circuit", "", "show only runs of this circuit file")
	cmd.Flags().StringVar(&opts.Operation, "op", "", "show only runs of one operation (state|unitary|bench)")
	cmd.Flags().IntVar(&opts.MinQubits, "min-qubits", 0, "show only runs on at least this many qubits")
	cmd.Flags().IntVar(&opts.MaxQubits, "max-qubits", 0, "show only runs on at most this many qubits")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	if opts.DB == "" {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "--db is required", nil)
	}

	filter := store.Filter{
		Operation: store.Operation(opts.Operation),
		MinQubits: opts.MinQubits,
		MaxQubits: opts.MaxQubits,
		Limit:     opts.Limit,
	}
	if opts.Operation != "" && !filter.Operation.Valid() {
		return f.Fail(ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("unknown operation %q: must be state, unitary or bench", opts.Operation), nil)
	}
	if opts.Circuit != "" {
		c, err := loadOrFail(f, opts.Circuit)
		if err != nil {
			return err
		}
		id, err := ir.CircuitID(c)
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeGeneric, "cannot hash circuit", err)
		}
		filter.CircuitID = id
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to open run log", err)
	}
	defer st.Close()

	runs, err := st.FindRuns(cmd.Context(), filter)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to read run log", err)
	}

	result := HistoryResult{CircuitID: filter.CircuitID, Runs: runs}
	return f.Success(result, func(w io.Writer) error {
		return writeHistory(w, result)
	})
}

func writeHistory(w io.Writer, r HistoryResult) error {
	if len(r.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tOPERATION\tCIRCUIT\tQUBITS\tGATES\tDEPTH\tELAPSED\tRESULT")
	for _, run := range r.Runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.Seq, run.Operation, shortID(run.CircuitID),
			run.Qubits, run.Gates, run.Depth, run.Elapsed, shortID(run.ResultHash))
	}
	return tw.Flush()
}
