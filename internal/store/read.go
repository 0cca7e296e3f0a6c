package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const runColumns = `seq, id, circuit_id, operation, qubits, gates, depth, elapsed_ns, result, result_hash, engine_version`

// GetRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest last. limit <= 0 returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.FindRuns(ctx, Filter{Limit: limit})
}

// RunsForCircuit returns every run of one circuit in seq order.
// Returns an empty slice (not nil) if the circuit was never run.
func (s *Store) RunsForCircuit(ctx context.Context, circuitID string) ([]Run, error) {
	return s.FindRuns(ctx, Filter{CircuitID: circuitID})
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		op      string
		elapsed int64
		result  string
	)
	err := sc.Scan(&r.Seq, &r.ID, &r.CircuitID, &op, &r.Qubits, &r.Gates, &r.Depth,
		&elapsed, &result, &r.ResultHash, &r.EngineVersion)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.Operation = Operation(op)
	r.Elapsed = time.Duration(elapsed)
	r.Result = []byte(result)
	return r, nil
}
