package linalg

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"
)

// Default comparison tolerances.
const (
	DefaultRTol = 1e-8
	DefaultATol = 1e-8
)

// ErrDimensionMismatch indicates incompatible operand shapes.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []complex128
}

// NewMatrix returns a zero-filled r×c matrix.
func NewMatrix(r, c int) Matrix {
	return Matrix{Rows: r, Cols: c, Data: make([]complex128, r*c)}
}

// FromRows builds a matrix from row slices. All rows must share a length.
func FromRows(rows [][]complex128) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	c := len(rows[0])
	m := NewMatrix(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), c)
		}
		copy(m.Data[i*c:(i+1)*c], row)
	}
	return m, nil
}

// MustFromRows is like FromRows but panics on ragged input.
// Use only for literal gate definitions.
func MustFromRows(rows [][]complex128) Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

// Set stores v at row i, column j.
func (m Matrix) Set(i, j int, v complex128) {
	m.Data[i*m.Cols+j] = v
}

// IsSquare reports whether the matrix has as many rows as columns.
func (m Matrix) IsSquare() bool {
	return m.Rows == m.Cols
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	data := make([]complex128, len(m.Data))
	copy(data, m.Data)
	return Matrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// Kron returns the Kronecker product a ⊗ b.
// Element (i1*rb+i2, j1*cb+j2) of the result is a[i1,j1]*b[i2,j2], so the
// left operand indexes the most significant part of the combined index.
// Time: O(ra*ca*rb*cb); Memory: same.
func Kron(a, b Matrix) Matrix {
	out := NewMatrix(a.Rows*b.Rows, a.Cols*b.Cols)
	for i1 := 0; i1 < a.Rows; i1++ {
		for j1 := 0; j1 < a.Cols; j1++ {
			av := a.Data[i1*a.Cols+j1]
			if av == 0 {
				continue
			}
			for i2 := 0; i2 < b.Rows; i2++ {
				row := (i1*b.Rows + i2) * out.Cols
				brow := b.Data[i2*b.Cols : (i2+1)*b.Cols]
				base := row + j1*b.Cols
				for j2, bv := range brow {
					out.Data[base+j2] = av * bv
				}
			}
		}
	}
	return out
}

// KronAll folds Kron over ms from left to right starting at the 1×1 identity.
func KronAll(ms ...Matrix) Matrix {
	acc := Identity(1)
	for _, m := range ms {
		acc = Kron(acc, m)
	}
	return acc
}

// Mul returns the product a·b.
// Time: O(ra*ca*cb); Memory: O(ra*cb).
func Mul(a, b Matrix) (Matrix, error) {
	if a.Cols != b.Rows {
		return Matrix{}, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := NewMatrix(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		orow := out.Data[i*out.Cols : (i+1)*out.Cols]
		for k := 0; k < a.Cols; k++ {
			av := a.Data[i*a.Cols+k]
			if av == 0 {
				continue
			}
			brow := b.Data[k*b.Cols : (k+1)*b.Cols]
			for j, bv := range brow {
				orow[j] += av * bv
			}
		}
	}
	return out, nil
}

// MulVec returns the product m·v.
func MulVec(m Matrix, v Vector) (Vector, error) {
	if m.Cols != len(v) {
		return nil, fmt.Errorf("%w: %dx%d · %d", ErrDimensionMismatch, m.Rows, m.Cols, len(v))
	}
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		var sum complex128
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		for k, mv := range row {
			if mv == 0 {
				continue
			}
			sum += mv * v[k]
		}
		out[i] = sum
	}
	return out, nil
}

// Add returns the element-wise sum a+b.
func Add(a, b Matrix) (Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return Matrix{}, fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := NewMatrix(a.Rows, a.Cols)
	for i := range a.Data {
		out.Data[i] = a.Data[i] + b.Data[i]
	}
	return out, nil
}

// Scale returns s·m.
func Scale(s complex128, m Matrix) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, v := range m.Data {
		out.Data[i] = s * v
	}
	return out
}

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*out.Cols+i] = cmplx.Conj(m.Data[i*m.Cols+j])
		}
	}
	return out
}

// IsUnitary reports whether mᴴ·m equals the identity within tolerance.
func (m Matrix) IsUnitary(rtol, atol float64) bool {
	if !m.IsSquare() {
		return false
	}
	p, err := Mul(m.Dagger(), m)
	if err != nil {
		return false
	}
	return AllClose(p, Identity(m.Rows), rtol, atol)
}

// Column returns column j as a vector.
func (m Matrix) Column(j int) Vector {
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = m.Data[i*m.Cols+j]
	}
	return out
}

// AllClose reports whether a and b have equal shapes and every pair of
// elements satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b Matrix, rtol, atol float64) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	return closeSlices(a.Data, b.Data, rtol, atol)
}

// Equal reports exact element-wise equality.
func Equal(a, b Matrix) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			return false
		}
	}
	return true
}

// Rows2D returns the matrix as a slice of rows.
func (m Matrix) Rows2D() [][]complex128 {
	out := make([][]complex128, m.Rows)
	for i := range out {
		out[i] = append([]complex128(nil), m.Data[i*m.Cols:(i+1)*m.Cols]...)
	}
	return out
}

// String renders the matrix one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(FormatComplex(m.Data[i*m.Cols+j]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func closeSlices(a, b []complex128, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > atol+rtol*cmplx.Abs(b[i]) {
			return false
		}
	}
	return true
}
