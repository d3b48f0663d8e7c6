package numeric

import (
	"fmt"
	gomath "math"
)

// relTol is the relative part of the Brent stopping test
const relTol = 4 * 2.220446049250313e-16

// iterationMargin is subtracted from the iteration ceiling
const iterationMargin = 50

// SameSign reports whether fa and fb lie on the same side of zero. Zero
// counts as non-negative.
func SameSign(fa, fb float64) bool {
	return (fa >= 0) == (fb >= 0)
}

// ClampIterations caps n at ceiling-50, never below 1
func ClampIterations(n, ceiling int) int {
	limit := ceiling - iterationMargin
	if limit < 1 {
		limit = 1
	}
	if n > limit {
		return limit
	}
	return n
}

// FindRoot locates a zero of f inside [a, b] with Brent's method after
// checking that f changes sign across the bounds.
func FindRoot(f Func, a, b, tol float64, maxIter, ceiling int) Result {
	fa, fb := f(a), f(b)
	if gomath.IsNaN(fa) || gomath.IsNaN(fb) {
		return failed(KindRoot, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrDomain, a, fa, b, fb))
	}
	if SameSign(fa, fb) {
		return failed(KindRoot, ErrBracketing)
	}

	root, iters, err := Brent(f, a, b, tol, ClampIterations(maxIter, ceiling))
	return Result{Kind: KindRoot, Value: root, FunctionValue: f(root), Iterations: iters, Err: err}
}

// Brent finds a root of f bracketed by [xa, xb]. The bracket must already
// straddle zero. It stops when the half width of the bracket drops below
// (xtol + 4eps|x|)/2 and returns the root estimate and the number of
// iterations performed.
func Brent(f Func, xa, xb, xtol float64, maxIter int) (float64, int, error) {
	xpre, xcur := xa, xb
	fpre, fcur := f(xpre), f(xcur)
	var xblk, fblk, spre, scur float64

	if fpre*fcur > 0 {
		return 0, 0, ErrBracketing
	}
	if fpre == 0 {
		return xpre, 0, nil
	}
	if fcur == 0 {
		return xcur, 0, nil
	}

	iters := 0
	for i := 0; i < maxIter; i++ {
		iters++
		if fpre != 0 && fcur != 0 && gomath.Signbit(fpre) != gomath.Signbit(fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		if gomath.Abs(fblk) < gomath.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (xtol + relTol*gomath.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || gomath.Abs(sbis) < delta {
			return xcur, iters, nil
		}

		if gomath.Abs(spre) > delta && gomath.Abs(fcur) < gomath.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*gomath.Abs(stry) < gomath.Min(gomath.Abs(spre), 3*gomath.Abs(sbis)-delta) {
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if gomath.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}

		fcur = f(xcur)
		if gomath.IsNaN(fcur) {
			return xcur, iters, fmt.Errorf("%w: f(%g) is NaN", ErrDomain, xcur)
		}
	}
	return xcur, iters, fmt.Errorf("%w: %d iterations", ErrConvergence, maxIter)
}
