package testutil

import (
	"math"
	"math/rand"

	"github.com/kshitijdave/QuantumGateSim/internal/gates"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// RandomCircuit builds a reproducible random circuit over n qubits drawn
// from every supported gate kind. Two-qubit gates appear only when n >= 2.
// The same seed always yields the same circuit.
func RandomCircuit(seed int64, n, count int) *ir.Circuit {
	rng := rand.New(rand.NewSource(seed))

	var single, controlled []gates.Kind
	for _, k := range gates.Kinds() {
		if k.IsControlled() {
			controlled = append(controlled, k)
		} else {
			single = append(single, k)
		}
	}

	c := ir.NewCircuit(n)
	for i := 0; i < count; i++ {
		if n >= 2 && rng.Intn(3) == 0 {
			k := controlled[rng.Intn(len(controlled))]
			control := rng.Intn(n)
			target := rng.Intn(n - 1)
			if target >= control {
				target++
			}
			c.Apply(k.String(), nil, control, target)
			continue
		}

		k := single[rng.Intn(len(single))]
		var params []float64
		for j := 0; j < k.Params(); j++ {
			params = append(params, (rng.Float64()*2-1)*math.Pi)
		}
		c.Apply(k.String(), params, rng.Intn(n))
	}
	return c
}
