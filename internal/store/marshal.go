package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// EncodeResult converts any JSON-marshalable value into a canonical result
// payload. Structs are flattened through encoding/json first, so their json
// tags name the stored keys.
func EncodeResult(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return canonicalize(data)
}

// canonicalize re-serializes arbitrary JSON with ir.MarshalCanonical.
func canonicalize(data []byte) (json.RawMessage, error) {
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	out, err := ir.MarshalCanonical(generic)
	if err != nil {
		return nil, fmt.Errorf("canonicalize result: %w", err)
	}
	return out, nil
}

// DecodeResult unmarshals a stored payload into v.
func (r Run) DecodeResult(v any) error {
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("decode result of run %s: %w", r.ID, err)
	}
	return nil
}
