package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/qasm"
)

// SourceFormat identifies a circuit file encoding.
type SourceFormat string

const (
	SourceYAML SourceFormat = "yaml"
	SourceJSON SourceFormat = "json"
	SourceCUE  SourceFormat = "cue"
	SourceQASM SourceFormat = "qasm"
)

// FormatForPath picks the source format from a file extension.
func FormatForPath(path string) (SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SourceYAML, nil
	case ".json":
		return SourceJSON, nil
	case ".cue":
		return SourceCUE, nil
	case ".qasm":
		return SourceQASM, nil
	default:
		return "", fmt.Errorf("unrecognised circuit file extension %q (want .yaml, .yml, .json, .cue or .qasm)", filepath.Ext(path))
	}
}

// Decode parses a circuit document. Unknown fields are rejected in every
// structured format. The circuit is not validated; call Validate or Check.
func Decode(format SourceFormat, filename string, data []byte) (*ir.Circuit, error) {
	switch format {
	case SourceYAML:
		var c ir.Circuit
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return &c, nil

	case SourceJSON:
		var c ir.Circuit
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return &c, nil

	case SourceCUE:
		return CompileCUE(cuecontext.New(), filename, data)

	case SourceQASM:
		c, err := qasm.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown circuit format %q", format)
	}
}

// LoadFile reads and decodes a circuit file, choosing the format from its
// extension.
func LoadFile(path string) (*ir.Circuit, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(format, filepath.Base(path), data)
}
