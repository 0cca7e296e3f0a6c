package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kshitijdave/QuantumGateSim/internal/linalg"
)

// RequireStateClose fails the test unless got matches want within the
// default tolerances.
func RequireStateClose(t testing.TB, want, got linalg.Vector, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want), msgAndArgs...)
	if !linalg.VecAllClose(got, want, linalg.DefaultRTol, linalg.DefaultATol) {
		require.Fail(t, "state vectors differ\nwant: "+formatVector(want)+"\ngot:  "+formatVector(got), msgAndArgs...)
	}
}

// RequireMatrixClose fails the test unless got matches want within the
// default tolerances.
func RequireMatrixClose(t testing.TB, want, got linalg.Matrix, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want.Rows, got.Rows, msgAndArgs...)
	require.Equal(t, want.Cols, got.Cols, msgAndArgs...)
	if !linalg.AllClose(got, want, linalg.DefaultRTol, linalg.DefaultATol) {
		require.Fail(t, "matrices differ\nwant:\n"+want.String()+"\ngot:\n"+got.String(), msgAndArgs...)
	}
}

func formatVector(v linalg.Vector) string {
	s := "["
	for i, c := range v {
		if i > 0 {
			s += " "
		}
		s += linalg.FormatComplex(c)
	}
	return s + "]"
}
