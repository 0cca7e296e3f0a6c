package cli

import (
	"context"
	"log/slog"

	"github.com/kshitijdave/QuantumGateSim/internal/store"
)

// openStore opens the run log named by --db. It returns nil, nil when no
// log was requested.
func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.DB == "" {
		return nil, nil
	}
	st, err := store.Open(opts.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to open run log", err)
	}
	return st, nil
}

// recordRuns appends runs to the --db log, if one was given.
func recordRuns(ctx context.Context, opts *RootOptions, logger *slog.Logger, runs ...store.Run) error {
	st, err := openStore(opts)
	if err != nil || st == nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing run log", "error", closeErr)
		}
	}()

	for _, r := range runs {
		written, err := st.WriteRun(ctx, r)
		if err != nil {
			return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to record run", err)
		}
		logger.Debug("run recorded", "id", written.ID, "seq", written.Seq, "operation", written.Operation)
	}
	return nil
}
