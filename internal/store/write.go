package store

import (
	"context"
	"fmt"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// WriteRun appends a run to the log and returns it with ID, Seq and
// ResultHash filled in. An ID already set on r is kept; otherwise the
// store's IDGenerator assigns one.
//
// The Result payload is re-serialized to canonical JSON before storage, so
// equal results always store (and hash) identically.
func (s *Store) WriteRun(ctx context.Context, r Run) (Run, error) {
	if !r.Operation.Valid() {
		return Run{}, fmt.Errorf("write run: unknown operation %q", r.Operation)
	}
	if r.CircuitID == "" {
		return Run{}, fmt.Errorf("write run: circuit ID is required")
	}
	if len(r.Result) == 0 {
		r.Result = []byte("{}")
	}

	result, err := canonicalize(r.Result)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	r.Result = result
	r.ResultHash = ir.ResultHash(result)
	if r.EngineVersion == "" {
		r.EngineVersion = ir.EngineVersion
	}
	if r.ID == "" {
		r.ID = s.ids.Generate()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, circuit_id, operation, qubits, gates, depth, elapsed_ns, result, result_hash, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.CircuitID,
		string(r.Operation),
		r.Qubits,
		r.Gates,
		r.Depth,
		r.Elapsed.Nanoseconds(),
		string(r.Result),
		r.ResultHash,
		r.EngineVersion,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	r.Seq, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("write run: seq: %w", err)
	}
	return r, nil
}
