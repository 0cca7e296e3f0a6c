package qasm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseParam parses one gate parameter: a plain number or a pi expression.
// NaN and infinities are rejected.
//
// Supported formats:
//   - Plain numbers: "1.5707", "3.14", "-0.5", "3.14e-2"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
func ParseParam(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty parameter")
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, fmt.Errorf("parameter %q is not finite", s)
		}
		return val, nil
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, fmt.Errorf("invalid parameter %q", s)
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid coefficient in %q", s)
		}
	}

	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("invalid denominator in %q", s)
		}
		result /= denom
	}

	if matches[1] == "-" {
		result = -result
	}
	return result, nil
}

// piForms are the pi multiples FormatParam writes symbolically.
var piForms = []string{
	"2*pi", "pi", "pi/2", "pi/3", "pi/4", "pi/6", "pi/8",
	"3*pi/4", "3*pi/2", "2*pi/3",
}

// FormatParam formats a parameter, using pi notation when that notation
// parses back to exactly the same float64. Anything else is written in the
// shortest form that round-trips.
func FormatParam(val float64) string {
	for _, form := range piForms {
		for _, display := range []string{form, "-" + form} {
			if v, err := ParseParam(display); err == nil && v == val {
				return display
			}
		}
	}
	if val == 0 {
		return "0"
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}
