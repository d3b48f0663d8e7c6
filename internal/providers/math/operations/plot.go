package operations

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
	"github.com/GriffinCanCode/plotter/internal/providers/math/presets"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// PlotOps handles expression sampling tools
type PlotOps struct {
	*common.MathOps
}

var plotParams = []types.Parameter{
	{Name: "expression", Type: "string", Description: "Expression in x (and y for surfaces); commas separate parametric channels", Required: true},
	{Name: "start", Type: "string", Description: "Interval start, a constant expression such as -pi*20", Required: true},
	{Name: "stop", Type: "string", Description: "Interval stop, a constant expression", Required: true},
	{Name: "resolution", Type: "number", Description: "Sample count (100-10000)", Required: false},
	{Name: "polar", Type: "boolean", Description: "Plot a single expression as r(theta)", Required: false},
}

// GetTools returns plotting tool definitions
func (p *PlotOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.evaluate",
			Name:        "Evaluate",
			Description: "Sample an expression over an interval and return the plot dataset",
			Parameters:  plotParams,
			Returns:     "object",
		},
		{
			ID:          "math.classify",
			Name:        "Classify",
			Description: "Determine the plot mode of an expression",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression text", Required: true},
				{Name: "polar", Type: "boolean", Description: "Polar override", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "math.domain",
			Name:        "Domain",
			Description: "Build the sample grid for a plot mode",
			Parameters: []types.Parameter{
				{Name: "start", Type: "string", Description: "Interval start", Required: true},
				{Name: "stop", Type: "string", Description: "Interval stop", Required: true},
				{Name: "resolution", Type: "number", Description: "Sample count", Required: false},
				{Name: "mode", Type: "string", Description: "Plot mode (default single)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "math.view",
			Name:        "View",
			Description: "Zoom or pan the plot interval and resample",
			Parameters: append([]types.Parameter{
				{Name: "action", Type: "string", Description: "zoom_in, zoom_out, pan_left or pan_right", Required: true},
			}, plotParams...),
			Returns: "object",
		},
		{
			ID:          "math.presets",
			Name:        "Presets",
			Description: "List example expressions and named x-ranges",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Return a single preset", Required: false},
			},
			Returns: "object",
		},
	}
}

// Evaluate samples an expression and returns the encoded dataset
func (p *PlotOps) Evaluate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	req, err := p.PlotRequest(params)
	if err != nil {
		return common.Failure(err.Error())
	}
	return p.sample(req)
}

func (p *PlotOps) sample(req plotting.Request) (*types.Result, error) {
	ds, err := plotting.Sample(req, p.Limits)
	if err != nil {
		p.Observe().ObserveEvaluation("", common.Kind(err), 0)
		return common.FailureFrom(err)
	}
	p.Observe().ObserveEvaluation(string(ds.Mode), "ok", ds.Domain.Len())
	return common.Success(EncodeDataset(ds))
}

// Classify reports the plot mode without sampling
func (p *PlotOps) Classify(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	text, ok := common.GetString(params, "expression")
	if !ok {
		return common.Failure("expression parameter required")
	}
	polar, _ := common.GetBool(params, "polar")

	prog, err := expression.Compile(text)
	if err != nil {
		return common.FailureFrom(err)
	}
	mode, err := plotting.Classify(prog, plotting.Overrides{Polar: polar})
	if err != nil {
		return common.FailureFrom(err)
	}

	return common.Success(map[string]interface{}{
		"expression": text,
		"mode":       mode,
		"channels":   prog.Channels(),
		"variables":  prog.FreeVariables(),
	})
}

// Domain returns the sample grid for an interval
func (p *PlotOps) Domain(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	start, ok := common.GetText(params, "start")
	if !ok {
		return common.Failure("start parameter required")
	}
	stop, ok := common.GetText(params, "stop")
	if !ok {
		return common.Failure("stop parameter required")
	}

	resolution := p.Resolution
	if _, present := params["resolution"]; present {
		if resolution, ok = common.GetInt(params, "resolution"); !ok {
			return common.Failure("resolution must be an integer")
		}
	}
	if err := plotting.ValidateResolution(resolution, p.Limits.MinResolution, p.Limits.MaxResolution); err != nil {
		return common.FailureFrom(err)
	}

	mode := plotting.ModeSingle
	if m, ok := common.GetString(params, "mode"); ok && m != "" {
		mode = plotting.Mode(m)
		if !mode.Valid() {
			return common.Failure(fmt.Sprintf("unknown mode %q", m))
		}
	}

	a, b, err := plotting.Bounds(start, stop)
	if err != nil {
		return common.FailureFrom(err)
	}
	domain := plotting.BuildDomain(a, b, resolution, mode)
	rows, cols := domain.Dims()

	return common.Success(map[string]interface{}{
		"mode": mode,
		"axis": Series(domain.Axis),
		"rows": rows,
		"cols": cols,
	})
}

// View applies a zoom or pan to the interval and resamples. The returned
// state is what the caller should hold for its next request.
func (p *PlotOps) View(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	action, ok := common.GetString(params, "action")
	if !ok {
		return common.Failure("action parameter required")
	}
	req, err := p.PlotRequest(params)
	if err != nil {
		return common.Failure(err.Error())
	}
	start, stop, err := plotting.Bounds(req.Start, req.Stop)
	if err != nil {
		return common.FailureFrom(err)
	}

	state := plotting.PlotState{
		Expression: req.Expression,
		Start:      start,
		Stop:       stop,
		Resolution: req.Resolution,
		Polar:      req.Polar,
	}
	next, ok := state.Apply(action)
	if !ok {
		return common.Failure(fmt.Sprintf("unknown view action %q", action))
	}

	result, err := p.sample(next.Request())
	if err != nil || !result.Success {
		return result, err
	}
	result.Data["state"] = next
	return result, nil
}

// Presets lists the catalogue, or one entry by name
func (p *PlotOps) Presets(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if name, ok := common.GetString(params, "name"); ok && name != "" {
		preset, found := p.Catalog.Find(name)
		if !found {
			return common.Failure(fmt.Sprintf("preset not found: %s", name))
		}
		entry, err := presetEntry(preset)
		if err != nil {
			return common.FailureFrom(err)
		}
		return common.Success(entry)
	}

	list := make([]map[string]interface{}, 0, len(p.Catalog.Presets))
	for _, preset := range p.Catalog.Presets {
		entry, err := presetEntry(preset)
		if err != nil {
			return common.FailureFrom(err)
		}
		list = append(list, entry)
	}
	return common.Success(map[string]interface{}{
		"presets": list,
		"ranges":  p.Catalog.Ranges,
	})
}

func presetEntry(preset presets.Preset) (map[string]interface{}, error) {
	mode, err := preset.Mode()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":       preset.Name,
		"title":      preset.Title,
		"category":   preset.Category,
		"expression": preset.Expression,
		"start":      preset.Start,
		"stop":       preset.Stop,
		"polar":      preset.Polar,
		"mode":       mode,
	}, nil
}
