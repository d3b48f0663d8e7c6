// Package report renders analysis results as the fixed format text shown
// in the analysis dialog.
package report

import (
	"strconv"
	"strings"

	"github.com/GriffinCanCode/plotter/internal/providers/math/numeric"
)

// BracketingMessage is the report for a root search without a sign change
const BracketingMessage = "Root finding error\nFunction has same sign at left and right bounds"

// Format renders res for req over the expression text expr. It performs no
// I/O and depends only on its arguments.
func Format(res numeric.Result, req numeric.Request, expr string) string {
	if res.Is(numeric.ErrBracketing) {
		return BracketingMessage
	}
	if res.Err != nil && !partial(res) {
		return res.Kind.Title() + " error\n" + res.Reason()
	}

	var b strings.Builder
	b.WriteString("Function f(x) = " + expr)
	b.WriteString("\nInterval " + Float(req.Start) + " to " + Float(req.Stop))

	switch res.Kind {
	case numeric.KindRoot:
		b.WriteString("\nRoot " + Fixed(res.Value, 12))
		b.WriteString("\nCheck " + Sci(res.FunctionValue, 12))
		b.WriteString("\nNumber of iterations " + strconv.Itoa(res.Iterations))
	case numeric.KindMaximum:
		b.WriteString("\nMaximum at x= " + Fixed(res.Value, 9))
		b.WriteString("\nMaximum of function f(xmax)= " + Sci(res.FunctionValue, 3))
		b.WriteString("\nNumber of iterations " + strconv.Itoa(res.Iterations))
	case numeric.KindMinimum:
		b.WriteString("\nMinimum at x= " + Fixed(res.Value, 9))
		b.WriteString("\nMinimum of function f(xmin)= " + Sci(res.FunctionValue, 3))
		b.WriteString("\nNumber of iterations " + strconv.Itoa(res.Iterations))
	case numeric.KindIntegral:
		b.WriteString("\nIntegral over interval " + Fixed(res.Value, 12))
		b.WriteString("\nAbsolute error " + Sci(res.AbsError, 12))
	}

	if res.Err != nil {
		b.WriteString("\nWarning: " + res.Reason())
	}
	return b.String()
}

// partial reports whether a failed result still carries an estimate worth
// printing: an integral whose error estimate missed the target, or a
// golden-section search that ran out of budget
func partial(res numeric.Result) bool {
	if !res.Is(numeric.ErrConvergence) {
		return false
	}
	switch res.Kind {
	case numeric.KindIntegral, numeric.KindMaximum, numeric.KindMinimum:
		return true
	}
	return false
}

// Title is the dialog heading for kind
func Title(kind numeric.Kind) string {
	switch kind {
	case numeric.KindRoot:
		return "Root of function"
	case numeric.KindMaximum:
		return "Maximum of function"
	case numeric.KindMinimum:
		return "Minimum of function"
	case numeric.KindIntegral:
		return "Integral of function"
	default:
		return kind.Title()
	}
}
