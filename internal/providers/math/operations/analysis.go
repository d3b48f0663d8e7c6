package operations

import (
	"context"

	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/numeric"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
	"github.com/GriffinCanCode/plotter/internal/providers/math/report"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// AnalysisOps handles root, extremum and integral tools
type AnalysisOps struct {
	*common.MathOps
}

func analysisParams(what string) []types.Parameter {
	return []types.Parameter{
		{Name: "expression", Type: "string", Description: "Single expression in x", Required: true},
		{Name: "start", Type: "string", Description: "Left bound of the " + what, Required: true},
		{Name: "stop", Type: "string", Description: "Right bound of the " + what, Required: true},
		{Name: "tolerance", Type: "string", Description: "Tolerance, a positive constant expression", Required: false},
		{Name: "max_iterations", Type: "number", Description: "Iteration or subdivision budget", Required: false},
		{Name: "polar", Type: "boolean", Description: "Treat the expression as r(theta)", Required: false},
	}
}

// GetTools returns analysis tool definitions
func (a *AnalysisOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.root",
			Name:        "Find Root",
			Description: "Find a root in a sign changing bracket with Brent's method",
			Parameters:  analysisParams("bracket"),
			Returns:     "object",
		},
		{
			ID:          "math.maximum",
			Name:        "Find Maximum",
			Description: "Find a local maximum with golden-section search",
			Parameters:  analysisParams("search interval"),
			Returns:     "object",
		},
		{
			ID:          "math.minimum",
			Name:        "Find Minimum",
			Description: "Find a local minimum with golden-section search",
			Parameters:  analysisParams("search interval"),
			Returns:     "object",
		},
		{
			ID:          "math.integrate",
			Name:        "Integrate",
			Description: "Integrate over an interval with adaptive Gauss-Legendre quadrature",
			Parameters:  analysisParams("integration interval"),
			Returns:     "object",
		},
	}
}

// Root finds a root of the expression
func (a *AnalysisOps) Root(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.run(params, numeric.KindRoot)
}

// Maximum finds a local maximum of the expression
func (a *AnalysisOps) Maximum(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.run(params, numeric.KindMaximum)
}

// Minimum finds a local minimum of the expression
func (a *AnalysisOps) Minimum(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.run(params, numeric.KindMinimum)
}

// Integrate integrates the expression
func (a *AnalysisOps) Integrate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.run(params, numeric.KindIntegral)
}

func (a *AnalysisOps) run(params map[string]interface{}, kind numeric.Kind) (*types.Result, error) {
	req, err := analyzeRequest(params, kind)
	if err != nil {
		return common.Failure(err.Error())
	}

	analysis, err := plotting.Analyze(req, a.Analysis)
	if err != nil {
		a.Observe().ObserveAnalysis(string(kind), common.Kind(err), 0)
		return common.FailureFrom(err)
	}

	res := analysis.Result
	status := "converged"
	if !res.Converged() {
		status = "failed"
	}
	a.Observe().ObserveAnalysis(string(kind), status, res.Iterations+res.Subdivisions)

	return common.Success(EncodeAnalysis(analysis, req.Expression))
}

func analyzeRequest(params map[string]interface{}, kind numeric.Kind) (plotting.AnalyzeRequest, error) {
	expr, ok := common.GetString(params, "expression")
	if !ok {
		return plotting.AnalyzeRequest{}, errRequired("expression")
	}
	start, ok := common.GetText(params, "start")
	if !ok {
		return plotting.AnalyzeRequest{}, errRequired("start")
	}
	stop, ok := common.GetText(params, "stop")
	if !ok {
		return plotting.AnalyzeRequest{}, errRequired("stop")
	}
	tol, _ := common.GetText(params, "tolerance")

	var iters int
	if _, present := params["max_iterations"]; present {
		if iters, ok = common.GetInt(params, "max_iterations"); !ok {
			return plotting.AnalyzeRequest{}, errInteger("max_iterations")
		}
	}
	polar, _ := common.GetBool(params, "polar")

	return plotting.AnalyzeRequest{
		Expression:    expr,
		Polar:         polar,
		Kind:          kind,
		Start:         start,
		Stop:          stop,
		Tolerance:     tol,
		MaxIterations: iters,
	}, nil
}

// EncodeAnalysis renders a finished analysis with its text report
func EncodeAnalysis(analysis *plotting.Analysis, expr string) map[string]interface{} {
	res := analysis.Result
	data := map[string]interface{}{
		"kind":       res.Kind,
		"mode":       analysis.Mode,
		"title":      report.Title(res.Kind),
		"converged":  res.Converged(),
		"value":      Number(res.Value),
		"iterations": res.Iterations,
		"request":    analysis.Request,
		"report":     report.Format(res, analysis.Request, expr),
	}
	if !res.Converged() {
		data["reason"] = res.Reason()
	}

	switch res.Kind {
	case numeric.KindIntegral:
		data["abs_error"] = Number(res.AbsError)
		data["subdivisions"] = res.Subdivisions
		data["evaluations"] = res.Evaluations
		data["fill"] = map[string]interface{}{
			"start": Number(res.FillStart),
			"stop":  Number(res.FillStop),
		}
	default:
		data["function_value"] = Number(res.FunctionValue)
	}
	return data
}
