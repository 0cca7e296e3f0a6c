package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// Scenario defines one conformance test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Circuit is an inline circuit. Exactly one of Circuit and CircuitFile
	// must be set.
	Circuit *ir.Circuit `yaml:"circuit,omitempty"`

	// CircuitFile points at a circuit in any supported format.
	CircuitFile string `yaml:"circuit_file,omitempty"`

	// StrictSpans reports span collisions as errors instead of flushing.
	StrictSpans bool `yaml:"strict_spans,omitempty"`

	// Tolerance is the absolute tolerance for numeric assertions.
	// Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// DefaultTolerance applies when a scenario does not set one.
const DefaultTolerance = 1e-9

// Assertion validates the outcome of a scenario.
type Assertion struct {
	Type string `yaml:"type"`

	// Basis is a bit string, qubit n-1 first (amplitude, probability).
	Basis string `yaml:"basis,omitempty"`

	// Amplitude is [re] or [re, im] (amplitude).
	Amplitude []float64 `yaml:"amplitude,omitempty"`

	// Probability is the expected probability (probability,
	// qubit_probability).
	Probability *float64 `yaml:"probability,omitempty"`

	// Qubit selects the qubit for qubit_probability.
	Qubit *int `yaml:"qubit,omitempty"`

	// Depth is the expected layer count (depth).
	Depth *int `yaml:"depth,omitempty"`

	// Code is the expected error code (error).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertAmplitude        = "amplitude"
	AssertProbability      = "probability"
	AssertQubitProbability = "qubit_probability"
	AssertDepth            = "depth"
	AssertNorm             = "norm"
	AssertMatchesReference = "matches_reference"
	AssertError            = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative circuit_file is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if s.CircuitFile != "" && !filepath.IsAbs(s.CircuitFile) {
		s.CircuitFile = filepath.Join(filepath.Dir(path), s.CircuitFile)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml and *.yml scenario in dir, sorted by
// file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if (s.Circuit == nil) == (s.CircuitFile == "") {
		return fmt.Errorf("exactly one of circuit and circuit_file is required")
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertAmplitude:
		if a.Basis == "" {
			return fmt.Errorf("assertions[%d]: basis is required for amplitude", index)
		}
		if n := len(a.Amplitude); n != 1 && n != 2 {
			return fmt.Errorf("assertions[%d]: amplitude must be [re] or [re, im]", index)
		}
	case AssertProbability:
		if a.Basis == "" || a.Probability == nil {
			return fmt.Errorf("assertions[%d]: basis and probability are required for probability", index)
		}
	case AssertQubitProbability:
		if a.Qubit == nil || a.Probability == nil {
			return fmt.Errorf("assertions[%d]: qubit and probability are required for qubit_probability", index)
		}
	case AssertDepth:
		if a.Depth == nil || *a.Depth < 0 {
			return fmt.Errorf("assertions[%d]: non-negative depth is required for depth", index)
		}
	case AssertError:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for error", index)
		}
	case AssertNorm, AssertMatchesReference:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
