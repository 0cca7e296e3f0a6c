package store

import (
	"context"
	"fmt"
	"strings"
)

// Filter selects runs from the log. Zero fields match everything.
type Filter struct {
	Operation Operation
	CircuitID string
	MinQubits int
	MaxQubits int

	// Limit keeps only the most recent N matches; <= 0 keeps all.
	Limit int
}

// condition is one "column op ?" term of a WHERE clause.
type condition struct {
	column string
	op     string
	value  any
}

func (f Filter) conditions() []condition {
	var conds []condition
	if f.Operation != "" {
		conds = append(conds, condition{"operation", "=", string(f.Operation)})
	}
	if f.CircuitID != "" {
		conds = append(conds, condition{"circuit_id", "=", f.CircuitID})
	}
	if f.MinQubits > 0 {
		conds = append(conds, condition{"qubits", ">=", f.MinQubits})
	}
	if f.MaxQubits > 0 {
		conds = append(conds, condition{"qubits", "<=", f.MaxQubits})
	}
	return conds
}

// compile renders the filter as parameterized SQL. Values are never
// interpolated, and every query ends in ORDER BY seq so results are
// deterministic.
func (f Filter) compile() (string, []any, error) {
	if f.Operation != "" && !f.Operation.Valid() {
		return "", nil, fmt.Errorf("unknown operation %q", f.Operation)
	}
	if f.MinQubits > 0 && f.MaxQubits > 0 && f.MinQubits > f.MaxQubits {
		return "", nil, fmt.Errorf("min qubits %d exceeds max qubits %d", f.MinQubits, f.MaxQubits)
	}

	where := "1 = 1"
	var params []any
	if conds := f.conditions(); len(conds) > 0 {
		parts := make([]string, len(conds))
		for i, c := range conds {
			parts[i] = fmt.Sprintf("%s %s ?", c.column, c.op)
			params = append(params, c.value)
		}
		where = strings.Join(parts, " AND ")
	}

	query := `SELECT ` + runColumns + ` FROM runs WHERE ` + where
	if f.Limit <= 0 {
		return query + ` ORDER BY seq ASC`, params, nil
	}
	params = append(params, f.Limit)
	return `SELECT * FROM (` + query + ` ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC`, params, nil
}

// FindRuns returns the runs matching f in seq order.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) FindRuns(ctx context.Context, f Filter) ([]Run, error) {
	query, params, err := f.compile()
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return s.queryRuns(ctx, query, params...)
}
