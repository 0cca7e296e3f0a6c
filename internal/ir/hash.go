package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainCircuit = "qgsim/circuit/v1"
	DomainResult  = "qgsim/result/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CircuitID computes the content-addressed ID of a circuit. Two circuits
// have the same ID iff they have the same qubit count and the same gate
// sequence (tags compared case-insensitively, parameters bit-for-bit).
func CircuitID(c *Circuit) (string, error) {
	canonical, err := CanonicalCircuit(c)
	if err != nil {
		return "", fmt.Errorf("CircuitID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCircuit, canonical), nil
}

// ResultHash fingerprints an already-canonical result payload.
func ResultHash(canonical []byte) string {
	return hashWithDomain(DomainResult, canonical)
}

// MustCircuitID is like CircuitID but panics on error.
// Use only in tests or when the circuit is known to be finite.
func MustCircuitID(c *Circuit) string {
	id, err := CircuitID(c)
	if err != nil {
		panic(err)
	}
	return id
}
