package math

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/operations"
	"github.com/GriffinCanCode/plotter/internal/providers/math/statistics"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// Provider implements the plotting and analysis tools
type Provider struct {
	plot     *operations.PlotOps
	analysis *operations.AnalysisOps
	stats    *statistics.StatsOps
}

// NewProvider creates a math provider over shared ops. A nil ops uses
// the stock limits, budgets and preset catalogue.
func NewProvider(ops *common.MathOps) *Provider {
	if ops == nil {
		ops = common.NewMathOps()
	}

	return &Provider{
		plot:     &operations.PlotOps{MathOps: ops},
		analysis: &operations.AnalysisOps{MathOps: ops},
		stats:    &statistics.StatsOps{MathOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (m *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, m.plot.GetTools()...)
	tools = append(tools, m.analysis.GetTools()...)
	tools = append(tools, m.stats.GetTools()...)

	return types.Service{
		ID:          "math",
		Name:        "Math Service",
		Description: "Expression plotting and numerical analysis (sampling, roots, extrema, integrals)",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"evaluate",
			"classify",
			"sample",
			"root",
			"maximum",
			"minimum",
			"integrate",
			"presets",
			"summary",
		},
		Tools: tools,
		DataModels: []types.DataModel{
			{
				Name: "Dataset",
				Fields: map[string]string{
					"mode":     "single|polar|parametric2d|parametric3d|surface",
					"domain":   "object",
					"channels": "array",
					"labels":   "array",
					"extents":  "array",
				},
			},
			{
				Name: "Analysis",
				Fields: map[string]string{
					"kind":      "root|maximum|minimum|integral",
					"converged": "boolean",
					"value":     "number",
					"report":    "string",
				},
			},
		},
	}
}

// Execute routes to appropriate module
func (m *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	// Plotting
	case "math.evaluate":
		return m.plot.Evaluate(ctx, params, appCtx)
	case "math.classify":
		return m.plot.Classify(ctx, params, appCtx)
	case "math.domain":
		return m.plot.Domain(ctx, params, appCtx)
	case "math.view":
		return m.plot.View(ctx, params, appCtx)
	case "math.presets":
		return m.plot.Presets(ctx, params, appCtx)

	// Analysis
	case "math.root":
		return m.analysis.Root(ctx, params, appCtx)
	case "math.maximum":
		return m.analysis.Maximum(ctx, params, appCtx)
	case "math.minimum":
		return m.analysis.Minimum(ctx, params, appCtx)
	case "math.integrate":
		return m.analysis.Integrate(ctx, params, appCtx)

	// Statistics
	case "math.summary":
		return m.stats.Summary(ctx, params, appCtx)

	default:
		return nil, fmt.Errorf("%w: %s", types.ErrToolNotFound, toolID)
	}
}

var analysisTools = map[string]string{
	"root":     "math.root",
	"maximum":  "math.maximum",
	"minimum":  "math.minimum",
	"integral": "math.integrate",
}

// AnalysisTool maps an analysis kind (root, maximum, minimum or integral)
// onto the tool that runs it
func AnalysisTool(kind string) (string, bool) {
	toolID, ok := analysisTools[kind]
	return toolID, ok
}
