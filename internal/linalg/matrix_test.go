package linalg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKron_Dimensions(t *testing.T) {
	a := NewMatrix(2, 3)
	b := NewMatrix(4, 5)

	k := Kron(a, b)

	assert.Equal(t, 8, k.Rows)
	assert.Equal(t, 15, k.Cols)
	assert.Len(t, k.Data, 120)
}

func TestKron_LeftOperandIsMostSignificant(t *testing.T) {
	x := MustFromRows([][]complex128{{0, 1}, {1, 0}})
	id := Identity(2)

	// X ⊗ I flips the high bit: |00⟩ -> |10⟩ (index 0 -> 2).
	k := Kron(x, id)
	v, err := MulVec(k, Basis(4, 0))
	require.NoError(t, err)
	assert.Equal(t, Basis(4, 2), v)

	// I ⊗ X flips the low bit: |00⟩ -> |01⟩ (index 0 -> 1).
	k = Kron(id, x)
	v, err = MulVec(k, Basis(4, 0))
	require.NoError(t, err)
	assert.Equal(t, Basis(4, 1), v)
}

func TestKron_ScalarIdentityIsNeutral(t *testing.T) {
	m := MustFromRows([][]complex128{{1, 2i}, {3, 4}})

	assert.True(t, Equal(m, Kron(Identity(1), m)))
	assert.True(t, Equal(m, Kron(m, Identity(1))))
}

func TestKronAll_Empty(t *testing.T) {
	k := KronAll()
	assert.True(t, Equal(Identity(1), k))
}

func TestMul(t *testing.T) {
	a := MustFromRows([][]complex128{{1, 2}, {3, 4}})
	b := MustFromRows([][]complex128{{0, 1}, {1, 0}})

	p, err := Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]complex128{{2, 1}, {4, 3}}, p.Rows2D())
}

func TestMul_DimensionMismatch(t *testing.T) {
	_, err := Mul(NewMatrix(2, 3), NewMatrix(2, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = MulVec(NewMatrix(2, 2), make(Vector, 3))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Add(NewMatrix(2, 2), NewMatrix(3, 3))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]complex128{{1, 2}, {3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestDagger(t *testing.T) {
	m := MustFromRows([][]complex128{{1, 2i}, {3 - 1i, 4}})
	d := m.Dagger()
	assert.Equal(t, [][]complex128{{1, 3 + 1i}, {-2i, 4}}, d.Rows2D())
}

func TestIsUnitary(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)
	h := MustFromRows([][]complex128{{s, s}, {s, -s}})
	assert.True(t, h.IsUnitary(DefaultRTol, DefaultATol))

	notUnitary := MustFromRows([][]complex128{{1, 1}, {0, 1}})
	assert.False(t, notUnitary.IsUnitary(DefaultRTol, DefaultATol))

	assert.False(t, NewMatrix(2, 3).IsUnitary(DefaultRTol, DefaultATol))
}

func TestAllClose(t *testing.T) {
	a := MustFromRows([][]complex128{{1, 0}, {0, 1}})
	b := MustFromRows([][]complex128{{1 + 1e-10, 0}, {0, 1}})
	c := MustFromRows([][]complex128{{1.001, 0}, {0, 1}})

	assert.True(t, AllClose(a, b, DefaultRTol, DefaultATol))
	assert.False(t, AllClose(a, c, DefaultRTol, DefaultATol))
	assert.False(t, AllClose(a, NewMatrix(2, 3), DefaultRTol, DefaultATol))
}

func TestColumn(t *testing.T) {
	m := MustFromRows([][]complex128{{1, 2}, {3, 4}})
	assert.Equal(t, Vector{2, 4}, m.Column(1))
}
