package gates

import (
	"errors"
	"fmt"
)

// ErrNotControlled is returned when a controlled matrix is requested for a
// kind that is not a controlled gate, or for coinciding control and target.
var ErrNotControlled = errors.New("gates: not a controlled gate")

// UnsupportedGateError reports a gate tag with no entry in the library.
type UnsupportedGateError struct {
	Tag string
}

// Error implements the error interface.
func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("unsupported gate %q", e.Tag)
}

// ParamError reports a parameter list of the wrong length.
type ParamError struct {
	Tag  string
	Want int
	Got  int
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("gate %q takes %d parameter(s), got %d", e.Tag, e.Want, e.Got)
}

// IsUnsupported returns true if err is or wraps an UnsupportedGateError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedGateError
	return errors.As(err, &ue)
}
