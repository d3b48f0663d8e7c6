package numeric

import (
	"errors"
	"fmt"
	gomath "math"
)

// Func is a real valued function of one variable. Undefined points
// return NaN.
type Func func(float64) float64

// Kind selects the numerical routine
type Kind string

const (
	KindRoot     Kind = "root"
	KindMaximum  Kind = "maximum"
	KindMinimum  Kind = "minimum"
	KindIntegral Kind = "integral"
)

// Valid reports whether k names a routine
func (k Kind) Valid() bool {
	switch k {
	case KindRoot, KindMaximum, KindMinimum, KindIntegral:
		return true
	}
	return false
}

// Title returns the capitalised kind used in report headings
func (k Kind) Title() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindMaximum:
		return "Maximum"
	case KindMinimum:
		return "Minimum"
	case KindIntegral:
		return "Integral"
	default:
		return string(k)
	}
}

// Request parameterises one analysis run
type Request struct {
	Kind          Kind    `json:"kind"`
	Start         float64 `json:"start"`
	Stop          float64 `json:"stop"`
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

// Validate checks the request invariants
func (r Request) Validate() error {
	switch {
	case !r.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	case !finite(r.Start) || !finite(r.Stop):
		return fmt.Errorf("%w: interval bounds must be finite", ErrInvalidRequest)
	case !(r.Tolerance > 0) || gomath.IsInf(r.Tolerance, 0):
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidRequest)
	case r.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive", ErrInvalidRequest)
	}
	return nil
}

// Result is the outcome of an analysis run. Err is nil when the routine
// converged; otherwise it wraps one of the package failure classes and the
// numeric fields hold the best estimate available.
type Result struct {
	Kind          Kind
	Value         float64
	FunctionValue float64
	Iterations    int
	AbsError      float64
	Subdivisions  int
	Evaluations   int
	// FillStart and FillStop bound the area to shade for integrals
	FillStart float64
	FillStop  float64
	Err       error
}

// Converged reports whether the run succeeded
func (r Result) Converged() bool { return r.Err == nil }

// Reason returns the failure message, or "" on success
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Is reports whether the failure matches target
func (r Result) Is(target error) bool {
	return r.Err != nil && errors.Is(r.Err, target)
}

// Run dispatches req to its routine. ceiling caps root iteration budgets.
func Run(f Func, req Request, ceiling int) Result {
	if err := req.Validate(); err != nil {
		return Result{Kind: req.Kind, Value: gomath.NaN(), FunctionValue: gomath.NaN(), Err: err}
	}

	switch req.Kind {
	case KindRoot:
		return FindRoot(f, req.Start, req.Stop, req.Tolerance, req.MaxIterations, ceiling)
	case KindMaximum:
		return FindMaximum(f, req.Start, req.Stop, req.Tolerance, req.MaxIterations)
	case KindMinimum:
		return FindMinimum(f, req.Start, req.Stop, req.Tolerance, req.MaxIterations)
	default:
		return FindIntegral(f, req.Start, req.Stop, req.Tolerance, req.MaxIterations)
	}
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}

func failed(kind Kind, err error) Result {
	return Result{Kind: kind, Value: gomath.NaN(), FunctionValue: gomath.NaN(), Err: err}
}
