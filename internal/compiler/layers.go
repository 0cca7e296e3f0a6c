// Package compiler turns circuits into depth layers.
//
// Layers partitions a flat gate list into the layers the composition engine
// multiplies. Validate and Check enforce the structural rules first;
// CompileCircuit reads circuits authored in CUE.
package compiler

import (
	"fmt"
	"strings"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// Option configures Layers.
type Option func(*layerOptions)

type layerOptions struct {
	strictSpans bool
}

// WithStrictSpans makes Layers fail with E205 when a two-qubit gate's span
// encloses a qubit held by another gate of the current layer while both of
// its own qubits are free. By default such a gate simply starts a new layer.
func WithStrictSpans() Option {
	return func(o *layerOptions) {
		o.strictSpans = true
	}
}

// Layers partitions the circuit into depth layers.
//
// Gates are scanned in program order. Each gate claims every qubit of its
// span; a gate whose span touches a claimed qubit closes the current layer.
// Unclaimed qubits get identity slots. Each layer's slots run from qubit n-1
// down to qubit 0, the order of the Kronecker product.
//
// An empty circuit has no layers.
func Layers(c *ir.Circuit, opts ...Option) ([]ir.Layer, error) {
	var o layerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := Check(c); err != nil {
		return nil, err
	}

	n := c.Qubits
	owner := make([]int, n)
	reset := func() {
		for q := range owner {
			owner[q] = -1
		}
	}
	reset()

	var layers []ir.Layer
	used := false
	flush := func() {
		layers = append(layers, buildLayer(c, owner))
		reset()
		used = false
	}

	for i, g := range c.Gates {
		lo, hi := g.Span()

		if busy(owner, lo, hi) {
			if o.strictSpans && hi > lo && owner[lo] < 0 && owner[hi] < 0 {
				return nil, &InvalidCircuitError{
					Code:    ErrSpanCollision,
					Op:      i,
					Message: fmt.Sprintf("span q%d..q%d encloses a qubit held by another gate", lo, hi),
				}
			}
			flush()
		}

		for q := lo; q <= hi; q++ {
			owner[q] = i
		}
		used = true
	}

	if used {
		flush()
	}
	return layers, nil
}

func busy(owner []int, lo, hi int) bool {
	for q := lo; q <= hi; q++ {
		if owner[q] >= 0 {
			return true
		}
	}
	return false
}

// buildLayer materializes the owner array into slots, high qubit first.
func buildLayer(c *ir.Circuit, owner []int) ir.Layer {
	var slots []ir.Slot
	for q := len(owner) - 1; q >= 0; q-- {
		op := owner[q]
		if op < 0 {
			slots = append(slots, ir.IdentitySlot(q))
			continue
		}
		g := c.Gates[op]
		lo, hi := g.Span()
		slots = append(slots, ir.Slot{Tag: canonicalTag(g.Tag), Lo: lo, Hi: hi, Op: op})
		q = lo
	}
	return ir.Layer{Slots: slots}
}

func canonicalTag(tag string) string {
	if k, err := gates.ParseKind(tag); err == nil {
		return k.String()
	}
	return tag
}

// Reverse returns copies of the layers with their slots in ascending qubit
// order. The composition engine never needs this.
func Reverse(layers []ir.Layer) []ir.Layer {
	out := make([]ir.Layer, len(layers))
	for i, l := range layers {
		out[i] = ir.Layer{Slots: l.Reversed()}
	}
	return out
}

// FormatLayers renders a plain-text layer plan, one line per layer:
//
//	layer 1: q0:h q1:id q2:id
//	layer 2: q0..q1:cx q2:id
func FormatLayers(layers []ir.Layer) string {
	var sb strings.Builder
	for i, l := range layers {
		fmt.Fprintf(&sb, "layer %d: %s\n", i+1, l.String())
	}
	return sb.String()
}
