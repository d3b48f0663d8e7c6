package plotting

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
	"github.com/GriffinCanCode/plotter/internal/providers/math/numeric"
)

// ErrAnalysisMode is returned when the plot mode does not support the
// requested analysis
var ErrAnalysisMode = errors.New("plotting: analysis not available for this plot mode")

// Budget is a tolerance and iteration pair
type Budget struct {
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

// AnalysisDefaults fill in omitted tolerance and iteration values
type AnalysisDefaults struct {
	Root     Budget
	Extremum Budget
	Integral Budget
	// Ceiling caps root iteration budgets at Ceiling-50
	Ceiling int
	// MaxIterations caps every requested budget; 0 leaves them uncapped
	MaxIterations int
}

// DefaultAnalysis returns the stock budgets: root 1e-13/5000, extremum
// 1e-9/1000, integral 1e-8/5000, ceiling 1000, request cap 20000
func DefaultAnalysis() AnalysisDefaults {
	return AnalysisDefaults{
		Root:          Budget{Tolerance: 1e-13, MaxIterations: 5000},
		Extremum:      Budget{Tolerance: 1e-9, MaxIterations: 1000},
		Integral:      Budget{Tolerance: 1e-8, MaxIterations: 5000},
		Ceiling:       1000,
		MaxIterations: 20000,
	}
}

// For returns the budget for kind
func (d AnalysisDefaults) For(kind numeric.Kind) Budget {
	switch kind {
	case numeric.KindRoot:
		return d.Root
	case numeric.KindIntegral:
		return d.Integral
	default:
		return d.Extremum
	}
}

// AnalyzeRequest is raw analysis input. Bounds and tolerance are
// mini-expressions like the sampling bounds; empty Tolerance or zero
// MaxIterations select the defaults.
type AnalyzeRequest struct {
	Expression    string       `json:"expression"`
	Polar         bool         `json:"polar"`
	Kind          numeric.Kind `json:"kind"`
	Start         string       `json:"start"`
	Stop          string       `json:"stop"`
	Tolerance     string       `json:"tolerance"`
	MaxIterations int          `json:"max_iterations"`
}

// Analysis is a finished run together with its resolved request
type Analysis struct {
	Request numeric.Request
	Result  numeric.Result
	Mode    Mode
}

// Analyze compiles the expression, checks the mode allows the requested
// kind and runs it. Input problems come back as errors; numerical failures
// are carried in the Result.
func Analyze(req AnalyzeRequest, defs AnalysisDefaults) (*Analysis, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", numeric.ErrInvalidRequest, req.Kind)
	}

	prog, err := expression.Compile(req.Expression)
	if err != nil {
		return nil, err
	}
	mode, err := Classify(prog, Overrides{Polar: req.Polar})
	if err != nil {
		return nil, err
	}
	if err := checkAnalysisMode(mode, req.Kind); err != nil {
		return nil, err
	}

	nreq, err := resolveRequest(req, defs)
	if err != nil {
		return nil, err
	}

	// surface a type error once instead of as NaN on every probe
	if _, err := prog.Scalar(nreq.Start); err != nil {
		return nil, err
	}

	res := numeric.Run(Function(prog), nreq, defs.Ceiling)
	return &Analysis{Request: nreq, Result: res, Mode: mode}, nil
}

// Function adapts a single channel program to a numeric.Func. Evaluation
// errors map to NaN.
func Function(prog *expression.Program) numeric.Func {
	return func(x float64) float64 {
		v, err := prog.Scalar(x)
		if err != nil {
			return gomath.NaN()
		}
		return v
	}
}

func checkAnalysisMode(mode Mode, kind numeric.Kind) error {
	switch {
	case mode == ModeSingle:
		return nil
	case mode == ModePolar && kind != numeric.KindIntegral:
		return nil
	default:
		return fmt.Errorf("%w: %s on %s", ErrAnalysisMode, kind, mode)
	}
}

func resolveRequest(req AnalyzeRequest, defs AnalysisDefaults) (numeric.Request, error) {
	start, stop, err := Bounds(req.Start, req.Stop)
	if err != nil {
		return numeric.Request{}, err
	}

	budget := defs.For(req.Kind)
	tol := budget.Tolerance
	if strings.TrimSpace(req.Tolerance) != "" {
		tol, err = expression.EvalConstant(req.Tolerance)
		if err != nil {
			return numeric.Request{}, fmt.Errorf("%w: tolerance %q: %v", numeric.ErrInvalidRequest, req.Tolerance, err)
		}
	}
	iters := budget.MaxIterations
	if req.MaxIterations != 0 {
		iters = req.MaxIterations
	}
	if defs.MaxIterations > 0 && iters > defs.MaxIterations {
		iters = defs.MaxIterations
	}

	out := numeric.Request{Kind: req.Kind, Start: start, Stop: stop, Tolerance: tol, MaxIterations: iters}
	if err := out.Validate(); err != nil {
		return numeric.Request{}, err
	}
	return out, nil
}
