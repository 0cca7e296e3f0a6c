package harness

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
	"github.com/kshitijdave/QuantumGateSim/internal/reference"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion and returns the failure
// messages. An evaluation error that no error assertion expects is itself a
// failure, and state assertions are skipped once evaluation has failed.
func EvaluateAssertions(result *Result, assertions []Assertion, tol float64) []string {
	var failures []string
	expectsError := false
	for _, a := range assertions {
		if a.Type == AssertError {
			expectsError = true
		}
	}
	if result.EvalErr != nil && !expectsError {
		failures = append(failures, fmt.Sprintf("evaluation failed: %v", result.EvalErr))
	}

	for i, a := range assertions {
		if a.Type != AssertError && result.EvalErr != nil {
			continue
		}
		if err := evaluateAssertion(result, a, tol); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion, tol float64) error {
	switch a.Type {
	case AssertAmplitude:
		return assertAmplitude(result, a, tol)
	case AssertProbability:
		return assertProbability(result, a, tol)
	case AssertQubitProbability:
		return assertQubitProbability(result, a, tol)
	case AssertDepth:
		if got := len(result.Layers); got != *a.Depth {
			return &AssertionError{Type: a.Type, Expected: strconv.Itoa(*a.Depth), Actual: strconv.Itoa(got)}
		}
		return nil
	case AssertNorm:
		if n := result.State.Norm(); math.Abs(n-1) > tol {
			return &AssertionError{Type: a.Type, Expected: "1", Actual: formatFloat(n)}
		}
		return nil
	case AssertMatchesReference:
		return assertMatchesReference(result, tol)
	case AssertError:
		if result.ErrorCode != a.Code {
			actual := "success"
			if result.EvalErr != nil {
				actual = fmt.Sprintf("%s (%v)", result.ErrorCode, result.EvalErr)
			}
			return &AssertionError{Type: a.Type, Expected: a.Code, Actual: actual}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// basisIndex parses a bit string written qubit n-1 first.
func basisIndex(basis string, qubits int) (int, error) {
	if len(basis) != qubits {
		return 0, fmt.Errorf("basis %q has %d bits, circuit has %d qubits", basis, len(basis), qubits)
	}
	i, err := strconv.ParseUint(basis, 2, 32)
	if err != nil {
		return 0, fmt.Errorf("basis %q is not a bit string", basis)
	}
	return int(i), nil
}

func assertAmplitude(result *Result, a Assertion, tol float64) error {
	i, err := basisIndex(a.Basis, result.Circuit.Qubits)
	if err != nil {
		return err
	}
	want := complex(a.Amplitude[0], 0)
	if len(a.Amplitude) == 2 {
		want = complex(a.Amplitude[0], a.Amplitude[1])
	}
	got := result.State[i]
	if cmplx.Abs(got-want) > tol {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("|%s⟩ = %s", a.Basis, linalg.FormatComplex(want)),
			Actual:   linalg.FormatComplex(got),
		}
	}
	return nil
}

func assertProbability(result *Result, a Assertion, tol float64) error {
	i, err := basisIndex(a.Basis, result.Circuit.Qubits)
	if err != nil {
		return err
	}
	got := result.State.Probabilities()[i]
	if math.Abs(got-*a.Probability) > tol {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("P(%s) = %s", a.Basis, formatFloat(*a.Probability)),
			Actual:   formatFloat(got),
		}
	}
	return nil
}

func assertQubitProbability(result *Result, a Assertion, tol float64) error {
	q := *a.Qubit
	if q < 0 || q >= result.Circuit.Qubits {
		return fmt.Errorf("qubit %d out of range [0, %d)", q, result.Circuit.Qubits)
	}
	got := engine.QubitProbabilities(result.State, result.Circuit.Qubits)[q].Prob1
	if math.Abs(got-*a.Probability) > tol {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("P(q%d=1) = %s", q, formatFloat(*a.Probability)),
			Actual:   formatFloat(got),
		}
	}
	return nil
}

func assertMatchesReference(result *Result, tol float64) error {
	want, err := reference.Simulate(result.Circuit)
	if err != nil {
		return fmt.Errorf("reference simulation: %w", err)
	}
	if !linalg.VecAllClose(result.State, want, 0, tol) {
		return &AssertionError{Type: AssertMatchesReference, Expected: "reference statevector", Actual: "different amplitudes"}
	}

	u, err := engine.New().Unitary(result.Circuit)
	if err != nil {
		return err
	}
	wantU, err := reference.Unitary(result.Circuit)
	if err != nil {
		return fmt.Errorf("reference unitary: %w", err)
	}
	if !linalg.AllClose(u, wantU, 0, tol) {
		return &AssertionError{Type: AssertMatchesReference, Expected: "reference unitary", Actual: "different matrix"}
	}
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
