package ir

// NewCircuit returns an empty circuit over n qubits.
func NewCircuit(n int) *Circuit {
	return &Circuit{Qubits: n}
}

// Apply appends a gate application and returns the circuit for chaining.
// No validation happens here; the compiler validates before simulation.
func (c *Circuit) Apply(tag string, params []float64, qubits ...int) *Circuit {
	g := Gate{Tag: tag, Qubits: append([]int(nil), qubits...)}
	if len(params) > 0 {
		g.Params = append([]float64(nil), params...)
	}
	c.Gates = append(c.Gates, g)
	return c
}

// Shorthands for the common gates.

func (c *Circuit) H(q int) *Circuit { return c.Apply("h", nil, q) }
func (c *Circuit) X(q int) *Circuit { return c.Apply("x", nil, q) }
func (c *Circuit) Y(q int) *Circuit { return c.Apply("y", nil, q) }
func (c *Circuit) Z(q int) *Circuit { return c.Apply("z", nil, q) }
func (c *Circuit) RX(theta float64, q int) *Circuit {
	return c.Apply("rx", []float64{theta}, q)
}
func (c *Circuit) RY(theta float64, q int) *Circuit {
	return c.Apply("ry", []float64{theta}, q)
}
func (c *Circuit) RZ(theta float64, q int) *Circuit {
	return c.Apply("rz", []float64{theta}, q)
}
func (c *Circuit) CX(control, target int) *Circuit { return c.Apply("cx", nil, control, target) }
func (c *Circuit) CY(control, target int) *Circuit { return c.Apply("cy", nil, control, target) }
func (c *Circuit) CZ(control, target int) *Circuit { return c.Apply("cz", nil, control, target) }

// Clone returns a deep copy.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[i] = Gate{
			Tag:    g.Tag,
			Qubits: append([]int(nil), g.Qubits...),
		}
		if g.Params != nil {
			out.Gates[i].Params = append([]float64(nil), g.Params...)
		}
	}
	return out
}
