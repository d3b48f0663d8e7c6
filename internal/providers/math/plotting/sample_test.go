package plotting

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
)

func TestSampleIdentity(t *testing.T) {
	ds, err := Sample(Request{Expression: "x", Start: "-1", Stop: "1", Resolution: 101}, DefaultLimits())
	require.NoError(t, err)

	assert.Equal(t, ModeSingle, ds.Mode)
	require.Len(t, ds.Channels, 1)
	assert.Equal(t, ds.Domain.Axis, ds.Channels[0].Floats())
	assert.Equal(t, "f(x)=x", ds.Title())
}

func TestSampleBoundsAreExpressions(t *testing.T) {
	ds, err := Sample(Request{Expression: "sin(x)+sin(1.1*x)", Start: "-pi*20", Stop: "pi*20", Resolution: 1000}, DefaultLimits())
	require.NoError(t, err)

	assert.InDelta(t, -20*gomath.Pi, ds.Start, 1e-12)
	assert.InDelta(t, 20*gomath.Pi, ds.Stop, 1e-12)
	assert.Equal(t, ds.Start, ds.Domain.Axis[0])
}

func TestSampleBadBound(t *testing.T) {
	ds, err := Sample(Request{Expression: "x", Start: "foo", Stop: "1", Resolution: 1000}, DefaultLimits())
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, ErrInterval)
}

func TestSampleNonFiniteBound(t *testing.T) {
	for _, bad := range []string{"1/0", "-1/0", "0/0"} {
		ds, err := Sample(Request{Expression: "x", Start: bad, Stop: "1", Resolution: 1000}, DefaultLimits())
		assert.Nil(t, ds, bad)
		assert.ErrorIs(t, err, ErrInterval, bad)

		_, _, err = Bounds("0", bad)
		assert.ErrorIs(t, err, ErrInterval, bad)
	}
}

func TestSampleResolutionRejected(t *testing.T) {
	for _, n := range []int{99, 10001} {
		ds, err := Sample(Request{Expression: "x", Start: "0", Stop: "1", Resolution: n}, DefaultLimits())
		assert.Nil(t, ds)
		assert.ErrorIs(t, err, ErrResolution)
	}
}

func TestSampleConstantBroadcast(t *testing.T) {
	ds, err := Sample(Request{Expression: "3", Start: "0", Stop: "1", Resolution: 200}, DefaultLimits())
	require.NoError(t, err)

	vals := ds.Channels[0].Floats()
	require.Len(t, vals, 200)
	for _, v := range vals {
		assert.Equal(t, 3.0, v)
	}

	ds, err = Sample(Request{Expression: "x,1", Start: "0", Stop: "1", Resolution: 100}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, 100, ds.Channels[1].Len())
	assert.Equal(t, "1 vs x", ds.Title())
}

func TestSampleSurface(t *testing.T) {
	ds, err := Sample(Request{Expression: "sin(x)*cos(y)", Start: "-pi", Stop: "pi", Resolution: 1000}, DefaultLimits())
	require.NoError(t, err)

	assert.Equal(t, ModeSurface, ds.Mode)
	require.Len(t, ds.Channels, 1)
	r, c := ds.Channels[0].Dims()
	assert.Equal(t, 31, r)
	assert.Equal(t, 31, c)
	assert.Equal(t, expression.KindGrid, ds.Channels[0].Kind())

	got := ds.Channels[0].Rows()
	assert.InDelta(t, gomath.Sin(ds.Domain.Axis[4])*gomath.Cos(ds.Domain.Axis[9]), got[9][4], 1e-15)
}

func TestSampleSurfaceConstant(t *testing.T) {
	ds, err := Sample(Request{Expression: "0*y+2", Start: "0", Stop: "1", Resolution: 100}, DefaultLimits())
	require.NoError(t, err)
	r, c := ds.Channels[0].Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 10, c)
}

func TestSampleParametric3D(t *testing.T) {
	ds, err := Sample(Request{Expression: "cos(x),-sin(x/3),sin(x)", Start: "-pi*3", Stop: "pi*3", Resolution: 500}, DefaultLimits())
	require.NoError(t, err)

	assert.Equal(t, ModeParametric3D, ds.Mode)
	assert.Len(t, ds.Channels, 3)
	assert.Equal(t, []string{"cos(x)", "-sin(x/3)", "sin(x)"}, ds.Labels)
}

func TestSampleEvaluatorErrorLeavesNothing(t *testing.T) {
	cases := map[string]error{
		"foo(x)":       expression.ErrName,
		"sin(x":        expression.ErrSyntax,
		"sin":          expression.ErrType,
		"x,x,x,x":      ErrUnsupportedChannels,
		"arctan2(x)":   expression.ErrType,
		"undefined+1":  expression.ErrName,
		"x ** ** 2":    expression.ErrSyntax,
		"sin(x)(1)":    expression.ErrSyntax,
		"(x>0)*exp(q)": expression.ErrName,
	}
	for text, want := range cases {
		ds, err := Sample(Request{Expression: text, Start: "0", Stop: "1", Resolution: 100}, DefaultLimits())
		assert.Nil(t, ds, text)
		assert.ErrorIs(t, err, want, text)
	}
}

func TestSampleIdempotent(t *testing.T) {
	req := Request{Expression: "exp(-x**2)*sin(pi*x*4)", Start: "-e", Stop: "e", Resolution: 1000}
	a, err := Sample(req, DefaultLimits())
	require.NoError(t, err)
	b, err := Sample(req, DefaultLimits())
	require.NoError(t, err)

	av, bv := a.Channels[0].Floats(), b.Channels[0].Floats()
	for i := range av {
		assert.Equal(t, gomath.Float64bits(av[i]), gomath.Float64bits(bv[i]))
	}
}

func TestExtents(t *testing.T) {
	ds, err := Sample(Request{Expression: "1/x", Start: "-1", Stop: "1", Resolution: 101}, DefaultLimits())
	require.NoError(t, err)

	ext := ds.Extents()
	require.Len(t, ext, 1)
	assert.True(t, ext[0].Valid)
	assert.Equal(t, -50.0, gomath.Round(ext[0].Min))
	assert.Equal(t, 50.0, gomath.Round(ext[0].Max))

	assert.False(t, extent([]float64{gomath.NaN(), gomath.Inf(1)}).Valid)
}

func TestPolarTitle(t *testing.T) {
	ds, err := Sample(Request{Expression: "2*sin(4*x)", Start: "0", Stop: "pi*2", Resolution: 100, Polar: true}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, ModePolar, ds.Mode)
	assert.Equal(t, "r(x)=2*sin(4*x)", ds.Title())
}
