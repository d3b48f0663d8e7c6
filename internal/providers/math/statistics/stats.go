package statistics

import (
	"context"
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// StatsOps summarises sampled datasets using gonum
type StatsOps struct {
	*common.MathOps
}

// Summary describes the finite samples of one channel. Defined is false
// when the channel has no finite sample, in which case the other fields
// are zero.
type Summary struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Finite  int     `json:"finite"`
	Defined bool    `json:"defined"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Median  float64 `json:"median"`
}

// GetTools returns stats tool definitions
func (s *StatsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.summary",
			Name:        "Summary",
			Description: "Sample an expression and summarise every channel (min, max, mean, stddev, median)",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression text", Required: true},
				{Name: "start", Type: "string", Description: "Interval start", Required: true},
				{Name: "stop", Type: "string", Description: "Interval stop", Required: true},
				{Name: "resolution", Type: "number", Description: "Sample count", Required: false},
				{Name: "polar", Type: "boolean", Description: "Polar override", Required: false},
			},
			Returns: "object",
		},
	}
}

// Summarize computes the statistics of values, skipping NaN and ±Inf
func Summarize(label string, values []float64) Summary {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !gomath.IsNaN(v) && !gomath.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	out := Summary{Label: label, Count: len(values), Finite: len(finite)}
	if len(finite) == 0 {
		return out
	}

	sort.Float64s(finite)
	out.Defined = true
	out.Min = floats.Min(finite)
	out.Max = floats.Max(finite)
	out.Median = stat.Quantile(0.5, stat.Empirical, finite, nil)
	if len(finite) == 1 {
		out.Mean = finite[0]
		return out
	}
	out.Mean, out.StdDev = stat.MeanStdDev(finite, nil)
	return out
}

// Summary samples the expression and summarises each channel
func (s *StatsOps) Summary(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	req, err := s.PlotRequest(params)
	if err != nil {
		return common.Failure(err.Error())
	}
	ds, err := plotting.Sample(req, s.Limits)
	if err != nil {
		return common.FailureFrom(err)
	}

	summaries := make([]Summary, len(ds.Channels))
	for i, ch := range ds.Channels {
		summaries[i] = Summarize(channelLabel(ds, i), ch.Floats())
	}

	return common.Success(map[string]interface{}{
		"expression": ds.Expression,
		"mode":       ds.Mode,
		"points":     ds.Domain.Len(),
		"channels":   summaries,
	})
}

// channelLabel names output i: the value label for curves and surfaces,
// the channel text for parametric modes
func channelLabel(ds *plotting.Dataset, i int) string {
	switch ds.Mode {
	case plotting.ModeParametric2D, plotting.ModeParametric3D:
		return ds.Labels[i]
	default:
		return ds.Labels[len(ds.Labels)-1]
	}
}
