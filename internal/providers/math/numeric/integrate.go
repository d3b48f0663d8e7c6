package numeric

import (
	"container/heap"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// lowOrder and highOrder are the Gauss-Legendre point counts compared
	// on every panel
	lowOrder  = 10
	highOrder = 21

	// RelTolerance is the relative accuracy target paired with the
	// absolute tolerance
	RelTolerance = 1.49e-8
)

// Estimate is the raw output of the adaptive integrator
type Estimate struct {
	Value        float64
	AbsError     float64
	Subdivisions int
	Evaluations  int
}

type panel struct {
	a, b  float64
	value float64
	err   float64
}

// panels is a max-heap on the error estimate
type panels []panel

func (p panels) Len() int            { return len(p) }
func (p panels) Less(i, j int) bool  { return p[i].err > p[j].err }
func (p panels) Swap(i, j int)       { p[i], p[j] = p[j], p[i] }
func (p *panels) Push(x interface{}) { *p = append(*p, x.(panel)) }
func (p *panels) Pop() interface{} {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

func totals(sets ...[]panel) (float64, float64) {
	var value, err float64
	for _, set := range sets {
		for _, pn := range set {
			value += pn.value
			err += pn.err
		}
	}
	return value, err
}

func newPanel(f Func, a, b float64) panel {
	hi := quad.Fixed(f, a, b, highOrder, quad.Legendre{}, 0)
	lo := quad.Fixed(f, a, b, lowOrder, quad.Legendre{}, 0)
	return panel{a: a, b: b, value: hi, err: gomath.Abs(hi - lo)}
}

// Integrate approximates the integral of f over [a, b] by globally
// adaptive Gauss-Legendre quadrature: the panel with the largest error
// estimate is bisected until the summed error meets
// max(absTol, RelTolerance*|value|) or maxSubdivisions panels exist.
// Panels too narrow to bisect are retired and refinement carries on with
// the rest. Reversed bounds negate the result.
func Integrate(f Func, a, b, absTol float64, maxSubdivisions int) Estimate {
	if a == b {
		return Estimate{}
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}
	if maxSubdivisions < 1 {
		maxSubdivisions = 1
	}
	perPanel := lowOrder + highOrder

	first := newPanel(f, a, b)
	h := &panels{first}
	var retired []panel
	evals := perPanel
	value, errSum := first.value, first.err
	for h.Len() > 0 && h.Len()+len(retired) < maxSubdivisions &&
		errSum > gomath.Max(absTol, RelTolerance*gomath.Abs(value)) {
		worst := heap.Pop(h).(panel)
		mid := worst.a + (worst.b-worst.a)/2
		if mid <= worst.a || mid >= worst.b {
			// cannot be split in float64
			retired = append(retired, worst)
			continue
		}
		left, right := newPanel(f, worst.a, mid), newPanel(f, mid, worst.b)
		heap.Push(h, left)
		heap.Push(h, right)
		evals += 2 * perPanel
		value += left.value + right.value - worst.value
		errSum += left.err + right.err - worst.err
		if gomath.IsNaN(value) {
			break
		}
	}

	// the running sums drift; report exact totals
	value, errSum = totals(*h, retired)
	return Estimate{
		Value:        sign * value,
		AbsError:     errSum,
		Subdivisions: h.Len() + len(retired),
		Evaluations:  evals,
	}
}

// FindIntegral wraps Integrate into a Result. An error estimate above the
// accuracy target is reported as ErrConvergence with the value kept.
func FindIntegral(f Func, a, b, absTol float64, maxSubdivisions int) Result {
	est := Integrate(f, a, b, absTol, maxSubdivisions)
	res := Result{
		Kind:         KindIntegral,
		Value:        est.Value,
		AbsError:     est.AbsError,
		Iterations:   est.Subdivisions,
		Subdivisions: est.Subdivisions,
		Evaluations:  est.Evaluations,
		FillStart:    a,
		FillStop:     b,
	}
	if !finite(est.Value) || gomath.IsNaN(est.AbsError) {
		res.Err = fmt.Errorf("%w: integral is %g", ErrDomain, est.Value)
		return res
	}
	if target := gomath.Max(absTol, RelTolerance*gomath.Abs(est.Value)); est.AbsError > target {
		res.Err = fmt.Errorf("%w: error estimate %.3e above %.3e after %d subdivisions",
			ErrConvergence, est.AbsError, target, est.Subdivisions)
	}
	return res
}
