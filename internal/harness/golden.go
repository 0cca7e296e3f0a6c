package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
)

// Snapshot renders the deterministic part of a result: the circuit shape
// and its layer plan, or the error code when evaluation failed.
func Snapshot(name string, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	fmt.Fprintf(&b, "qubits: %d\n", result.Circuit.Qubits)
	fmt.Fprintf(&b, "gates: %d\n", len(result.Circuit.Gates))
	if result.EvalErr != nil {
		fmt.Fprintf(&b, "error: %s\n", result.ErrorCode)
		return []byte(b.String())
	}
	fmt.Fprintf(&b, "depth: %d\n", len(result.Layers))
	b.WriteString(compiler.FormatLayers(result.Layers))
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}
