package numeric

import (
	"fmt"
	gomath "math"
)

// InvPhi is the inverse golden ratio (sqrt(5)-1)/2
var InvPhi = (gomath.Sqrt(5) - 1) / 2

// GoldenMax runs golden-section search for a maximum of f on [a, b]. It
// stops when b-a <= tol or after n steps and returns the bracket midpoint
// together with the number of steps consumed.
//
// The search assumes f is unimodal on the bracket. With several local
// maxima it converges to one of them, not necessarily the global one.
func GoldenMax(f Func, a, b, tol float64, n int) (float64, int) {
	x, used, _ := golden(f, a, b, tol, n, greater)
	return x, used
}

// GoldenMin is GoldenMax with the comparison mirrored
func GoldenMin(f Func, a, b, tol float64, n int) (float64, int) {
	x, used, _ := golden(f, a, b, tol, n, less)
	return x, used
}

func greater(fc, fd float64) bool { return fc > fd }
func less(fc, fd float64) bool    { return fc < fd }

// golden returns the midpoint, the steps used and the final bracket width
func golden(f Func, a, b, tol float64, n int, keepLeft func(fc, fd float64) bool) (float64, int, float64) {
	if a > b {
		a, b = b, a
	}
	used := 0
	for b-a > tol && used < n {
		used++
		c := b - (b-a)*InvPhi
		d := a + (b-a)*InvPhi
		if keepLeft(f(c), f(d)) {
			b = d
		} else {
			a = c
		}
	}
	return (a + b) / 2, used, b - a
}

// FindMaximum wraps GoldenMax into a Result
func FindMaximum(f Func, a, b, tol float64, maxIter int) Result {
	x, used, width := golden(f, a, b, tol, maxIter, greater)
	return extremum(KindMaximum, f, x, used, width, tol)
}

// FindMinimum wraps GoldenMin into a Result
func FindMinimum(f Func, a, b, tol float64, maxIter int) Result {
	x, used, width := golden(f, a, b, tol, maxIter, less)
	return extremum(KindMinimum, f, x, used, width, tol)
}

func extremum(kind Kind, f Func, x float64, used int, width, tol float64) Result {
	if gomath.IsNaN(x) {
		return failed(kind, fmt.Errorf("%w: midpoint is NaN", ErrDomain))
	}
	fx := f(x)
	res := Result{Kind: kind, Value: x, FunctionValue: fx, Iterations: used}
	if gomath.IsNaN(fx) {
		res.Err = fmt.Errorf("%w: f(%g) is NaN", ErrDomain, x)
		return res
	}
	if width > tol {
		res.Err = fmt.Errorf("%w: bracket width %g after %d iterations", ErrConvergence, width, used)
	}
	return res
}
