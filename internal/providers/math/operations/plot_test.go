package operations

import (
	"context"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
)

type recorder struct {
	evaluations []string
	analyses    []string
}

func (r *recorder) ObserveEvaluation(mode, status string, points int) {
	r.evaluations = append(r.evaluations, mode+"/"+status)
}

func (r *recorder) ObserveAnalysis(kind, status string, iterations int) {
	r.analyses = append(r.analyses, kind+"/"+status)
}

func newPlotOps() (*PlotOps, *recorder) {
	rec := &recorder{}
	ops := common.NewMathOps()
	ops.Observer = rec
	return &PlotOps{MathOps: ops}, rec
}

func TestEvaluate(t *testing.T) {
	p, rec := newPlotOps()

	res, err := p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "sin(x)",
		"start":      "-pi",
		"stop":       "pi",
		"resolution": float64(101),
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, plotting.ModeSingle, res.Data["mode"])
	assert.Equal(t, "f(x)=sin(x)", res.Data["title"])
	channels := res.Data["channels"].([]interface{})
	require.Len(t, channels, 1)
	assert.Len(t, channels[0].([]interface{}), 101)
	assert.Equal(t, []string{"single/ok"}, rec.evaluations)
}

func TestEvaluateDefaultsResolution(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "x",
		"start":      float64(0),
		"stop":       float64(1),
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1000, res.Data["resolution"])
}

func TestEvaluateGapsAreNull(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "log(x)",
		"start":      "-1",
		"stop":       "1",
		"resolution": float64(101),
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	series := res.Data["channels"].([]interface{})[0].([]interface{})
	assert.Nil(t, series[0], "log(-1) is NaN")
	assert.Equal(t, 0.0, series[100])
}

func TestEvaluatePolarProjection(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "cos(2*x)",
		"start":      "0",
		"stop":       "2*pi",
		"resolution": float64(100),
		"polar":      true,
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	projected := res.Data["projected"].(map[string]interface{})
	for _, r := range projected["r"].([]interface{}) {
		assert.GreaterOrEqual(t, r.(float64), 0.0)
	}
}

func TestEvaluateSurface(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "x*y",
		"start":      "-1",
		"stop":       "1",
		"resolution": float64(400),
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	grid := res.Data["channels"].([]interface{})[0].([][]interface{})
	require.Len(t, grid, 20)
	assert.Len(t, grid[0], 20)
	domain := res.Data["domain"].(map[string]interface{})
	assert.Equal(t, 20, domain["rows"])
}

func TestEvaluateErrors(t *testing.T) {
	p, rec := newPlotOps()

	tests := []struct {
		name   string
		params map[string]interface{}
		kind   string
	}{
		{"syntax", map[string]interface{}{"expression": "sin(", "start": "0", "stop": "1"}, "syntax"},
		{"name", map[string]interface{}{"expression": "foo(x)", "start": "0", "stop": "1"}, "name"},
		{"interval", map[string]interface{}{"expression": "x", "start": "bar", "stop": "1"}, "interval"},
		{"resolution", map[string]interface{}{"expression": "x", "start": "0", "stop": "1", "resolution": float64(5)}, "resolution"},
		{"channels", map[string]interface{}{"expression": "x,x,x,x", "start": "0", "stop": "1"}, "mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Evaluate(context.Background(), tt.params, nil)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.NotEmpty(t, *res.Error)
		})
	}
	assert.Len(t, rec.evaluations, len(tests))

	res, err := p.Evaluate(context.Background(), map[string]interface{}{"start": "0"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Kind)

	res, err = p.Evaluate(context.Background(), map[string]interface{}{
		"expression": "x", "start": "0", "stop": "1", "resolution": 150.5,
	}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestClassify(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Classify(context.Background(), map[string]interface{}{"expression": "sin(x), cos(x), x"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, plotting.ModeParametric3D, res.Data["mode"])
	assert.Equal(t, 3, res.Data["channels"])

	res, err = p.Classify(context.Background(), map[string]interface{}{"expression": "sin(x)", "polar": true}, nil)
	require.NoError(t, err)
	assert.Equal(t, plotting.ModePolar, res.Data["mode"])

	res, err = p.Classify(context.Background(), map[string]interface{}{"expression": "x +"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "syntax", res.Kind)
}

func TestDomain(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Domain(context.Background(), map[string]interface{}{
		"start": "0", "stop": "1", "resolution": float64(101), "mode": "surface",
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 10, res.Data["rows"])
	assert.Len(t, res.Data["axis"], 10)

	res, err = p.Domain(context.Background(), map[string]interface{}{"start": "0", "stop": "1", "mode": "bogus"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestView(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.View(context.Background(), map[string]interface{}{
		"action":     "zoom_in",
		"expression": "x",
		"start":      "-3",
		"stop":       "3",
		"resolution": float64(100),
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	state := res.Data["state"].(plotting.PlotState)
	assert.Equal(t, -1.0, state.Start)
	assert.Equal(t, 1.0, state.Stop)

	res, err = p.View(context.Background(), map[string]interface{}{
		"action": "spin", "expression": "x", "start": "0", "stop": "1",
	}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestPresets(t *testing.T) {
	p, _ := newPlotOps()

	res, err := p.Presets(context.Background(), map[string]interface{}{}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Len(t, res.Data["presets"], 16)

	res, err = p.Presets(context.Background(), map[string]interface{}{"name": "polar-rose"}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, plotting.ModePolar, res.Data["mode"])

	res, err = p.Presets(context.Background(), map[string]interface{}{"name": "nope"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestNumber(t *testing.T) {
	assert.Nil(t, Number(gomath.NaN()))
	assert.Nil(t, Number(gomath.Inf(-1)))
	assert.Equal(t, 1.5, Number(1.5))
}
