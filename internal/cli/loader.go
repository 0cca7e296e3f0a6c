package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/engine"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// LoadError describes why a circuit file could not be loaded.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExitCode maps the load failure to a process exit code: missing or
// unreadable files are command errors, undecodable content is a failure.
func (e *LoadError) ExitCode() int {
	if e.Code == ErrCodeParse {
		return ExitFailure
	}
	return ExitCommandError
}

// LoadCircuit reads a circuit file in any supported format. The circuit is
// decoded but not validated.
func LoadCircuit(path string) (*ir.Circuit, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "is a directory, want a circuit file"}
	}
	if _, err := compiler.FormatForPath(path); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: err.Error(), Err: err}
	}

	c, err := compiler.LoadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: err.Error(), Err: err}
	}
	return c, nil
}

// loadOrFail loads a circuit and reports failures through f.
func loadOrFail(f *OutputFormatter, path string) (*ir.Circuit, error) {
	c, err := LoadCircuit(path)
	if err == nil {
		f.VerboseLog("loaded %s: %d qubit(s), %d gate(s)", path, c.Qubits, len(c.Gates))
		return c, nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return nil, f.Fail(le.ExitCode(), le.Code, le.Message, le.Err)
	}
	return nil, f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), err)
}

// circuitFailure reports a compile or evaluation error. Invalid circuits and
// unsupported gates exit with ExitFailure under their E2xx code.
func circuitFailure(f *OutputFormatter, err error) error {
	code := engine.ErrorCode(err)
	if code == "" {
		code = ErrCodeGeneric
	}
	return f.Fail(ExitFailure, code, err.Error(), nil)
}

// circuitIDOrFail hashes c and reports a circuit that cannot be encoded
// canonically through f.
func circuitIDOrFail(f *OutputFormatter, c *ir.Circuit) (string, error) {
	id, err := ir.CircuitID(c)
	if err != nil {
		return "", f.Fail(ExitFailure, ErrCodeGeneric, "cannot hash circuit", err)
	}
	return id, nil
}
