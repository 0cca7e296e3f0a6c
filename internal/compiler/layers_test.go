package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
	"github.com/kshitijdave/QuantumGateSim/internal/testutil"
)

// requireCovering checks that every layer covers every qubit exactly once
// and that every gate lands in exactly one layer, in program order.
func requireCovering(t *testing.T, c *ir.Circuit, layers []ir.Layer) {
	t.Helper()

	var ops []int
	for li, l := range layers {
		require.Equal(t, c.Dim(), l.Dim(), "layer %d dimension", li)

		next := c.Qubits - 1
		for _, s := range l.Slots {
			require.Equal(t, next, s.Hi, "layer %d slots must be contiguous from the top", li)
			next = s.Lo - 1
		}
		require.Equal(t, -1, next, "layer %d must reach qubit 0", li)

		layerOps := l.Ops()
		ops = append(ops, layerOps...)
	}

	require.Len(t, ops, len(c.Gates))
	seen := make(map[int]bool)
	for _, op := range ops {
		require.False(t, seen[op], "gate %d placed twice", op)
		seen[op] = true
	}

	// Gates sharing a qubit keep program order across layers.
	layerOf := make(map[int]int)
	for li, l := range layers {
		for _, op := range l.Ops() {
			layerOf[op] = li
		}
	}
	for i := range c.Gates {
		for j := i + 1; j < len(c.Gates); j++ {
			ilo, ihi := c.Gates[i].Span()
			jlo, jhi := c.Gates[j].Span()
			if ilo <= jhi && jlo <= ihi {
				require.Less(t, layerOf[i], layerOf[j], "gates %d and %d overlap", i, j)
			}
		}
	}
}

func TestLayersEmptyCircuit(t *testing.T) {
	layers, err := Layers(ir.NewCircuit(3))
	require.NoError(t, err)
	assert.Empty(t, layers)
}

func TestLayersBell(t *testing.T) {
	c := ir.NewCircuit(2).H(0).CX(0, 1)
	layers, err := Layers(c)
	require.NoError(t, err)
	require.Len(t, layers, 2)

	assert.Equal(t, []ir.Slot{ir.IdentitySlot(1), {Tag: "h", Lo: 0, Hi: 0, Op: 0}}, layers[0].Slots)
	assert.Equal(t, []ir.Slot{{Tag: "cx", Lo: 0, Hi: 1, Op: 1}}, layers[1].Slots)
	assert.Equal(t, "layer 1: q0:h q1:id\nlayer 2: q0..q1:cx\n", FormatLayers(layers))
	requireCovering(t, c, layers)
}

func TestLayersParallelGatesShareALayer(t *testing.T) {
	c := ir.NewCircuit(3).H(0).X(1).RZ(0.5, 2)
	layers, err := Layers(c)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, []int{0, 1, 2}, layers[0].Ops())
	assert.Equal(t, "q0:h q1:x q2:rz", layers[0].String())
}

func TestLayersSameQubitSplits(t *testing.T) {
	c := ir.NewCircuit(1).X(0).X(0).H(0)
	layers, err := Layers(c)
	require.NoError(t, err)
	assert.Len(t, layers, 3)
	requireCovering(t, c, layers)
}

func TestLayersTagsAreCanonical(t *testing.T) {
	c := ir.NewCircuit(2).Apply("CX", nil, 1, 0)
	layers, err := Layers(c)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "cx", layers[0].Slots[0].Tag)
}

func TestLayersSpanEnclosingBusyQubit(t *testing.T) {
	// h on q1 holds the middle of the cx(0,2) span.
	c := ir.NewCircuit(3).H(1).CX(0, 2)

	layers, err := Layers(c)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "q0:id q1:h q2:id", layers[0].String())
	assert.Equal(t, "q0..q2:cx", layers[1].String())

	_, err = Layers(c, WithStrictSpans())
	require.Error(t, err)
	var ie *InvalidCircuitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrSpanCollision, ie.Code)
	assert.Equal(t, 1, ie.Op)
}

func TestLayersStrictAllowsEndpointDependency(t *testing.T) {
	c := ir.NewCircuit(3).H(0).CX(0, 2)
	layers, err := Layers(c, WithStrictSpans())
	require.NoError(t, err)
	assert.Len(t, layers, 2)
}

func TestLayersDemoCircuit(t *testing.T) {
	c := ir.NewCircuit(3).H(0).CX(1, 0).CZ(2, 1).CY(1, 2)
	layers, err := Layers(c)
	require.NoError(t, err)
	require.Len(t, layers, 4)
	assert.Equal(t, "q0:h q1:id q2:id", layers[0].String())
	assert.Equal(t, "q0..q1:cx q2:id", layers[1].String())
	assert.Equal(t, "q0:id q1..q2:cz", layers[2].String())
	assert.Equal(t, "q0:id q1..q2:cy", layers[3].String())
	requireCovering(t, c, layers)
}

func TestLayersInvalidCircuit(t *testing.T) {
	_, err := Layers(&ir.Circuit{Qubits: 2, Gates: []ir.Gate{{Tag: "cx", Qubits: []int{0, 2}}}})
	assert.True(t, IsInvalidCircuit(err))

	_, err = Layers(&ir.Circuit{Qubits: 2, Gates: []ir.Gate{{Tag: "zz", Qubits: []int{0, 1}}}})
	assert.True(t, gates.IsUnsupported(err))

	_, err = Layers(ir.NewCircuit(0))
	assert.True(t, IsInvalidCircuit(err))
}

func TestLayersRandomCircuitsCover(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		n := int(seed%5) + 1
		c := testutil.RandomCircuit(seed, n, 20)
		layers, err := Layers(c)
		require.NoError(t, err, "seed %d", seed)
		requireCovering(t, c, layers)
	}
}

func TestReverse(t *testing.T) {
	c := ir.NewCircuit(3).H(0).CX(1, 2)
	layers, err := Layers(c)
	require.NoError(t, err)

	rev := Reverse(layers)
	require.Len(t, rev, 1)
	assert.Equal(t, 0, rev[0].Slots[0].Lo)
	assert.Equal(t, "cx", rev[0].Slots[1].Tag)
	// The input keeps its product order.
	assert.Equal(t, "cx", layers[0].Slots[0].Tag)
}
