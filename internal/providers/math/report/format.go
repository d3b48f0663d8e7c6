package report

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"
)

// Float renders x the way an interactive calculator echoes it back:
// shortest round-trip digits, a trailing ".0" on integral values and
// scientific notation outside 1e-4 <= |x| < 1e16.
func Float(x float64) string {
	if s, ok := special(x); ok {
		return s
	}

	sci := strconv.FormatFloat(x, 'e', -1, 64)
	exp := exponent(sci)
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// FormatBound renders an interval bound or tolerance for an input field:
// the six digit scientific mantissa rounded to decimals places, followed by
// an E exponent unless it is zero, e.g. 6.283185E+01, 1.0E-13, -3.0.
func FormatBound(x float64, decimals int) string {
	if s, ok := special(x); ok {
		return s
	}

	sci := strconv.FormatFloat(x, 'e', 6, 64)
	mantissa, _ := strconv.ParseFloat(sci[:strings.IndexByte(sci, 'e')], 64)
	if decimals >= 0 {
		mantissa, _ = strconv.ParseFloat(strconv.FormatFloat(mantissa, 'f', decimals, 64), 64)
	}

	exp := exponent(sci)
	if exp == 0 {
		return Float(mantissa)
	}
	return fmt.Sprintf("%sE%+03d", Float(mantissa), exp)
}

// Fixed is %.*f with lower case nan and inf
func Fixed(x float64, prec int) string {
	if s, ok := special(x); ok {
		return s
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}

// Sci is %.*e with lower case nan and inf
func Sci(x float64, prec int) string {
	if s, ok := special(x); ok {
		return s
	}
	return strconv.FormatFloat(x, 'e', prec, 64)
}

func special(x float64) (string, bool) {
	switch {
	case gomath.IsNaN(x):
		return "nan", true
	case gomath.IsInf(x, 1):
		return "inf", true
	case gomath.IsInf(x, -1):
		return "-inf", true
	}
	return "", false
}

func exponent(sci string) int {
	i := strings.IndexByte(sci, 'e')
	if i < 0 {
		return 0
	}
	exp, _ := strconv.Atoi(sci[i+1:])
	return exp
}
