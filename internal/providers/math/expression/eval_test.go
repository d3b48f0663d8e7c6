package expression

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvalIdentity(t *testing.T) {
	xs := []float64{-1, -0.5, 0, 0.5, 1}
	out, err := MustCompile("x").Eval(XEnv(Sequence(xs)))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, xs, out[0].Floats())
}

func TestEvalDoesNotMutateInput(t *testing.T) {
	xs := []float64{1, 2, 3}
	_, err := MustCompile("-x*2").Eval(XEnv(Sequence(xs)))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, xs)
}

func TestEvalIdempotent(t *testing.T) {
	xs := []float64{-3, -1.25, 0, 0.75, 2.5}
	p := MustCompile("exp(-x**2)*sin(pi*x*4), sinc(x)")
	first, err := p.Eval(XEnv(Sequence(xs)))
	require.NoError(t, err)
	second, err := p.Eval(XEnv(Sequence(xs)))
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].Floats(), second[i].Floats())
	}
}

func TestEvalScalarSemantics(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x**3-15*x+3", 2, 8 - 30 + 3},
		{"2*cosh(x/2)", 0, 2},
		{"sinc(x)", 0, 1},
		{"sinc(x)", 1, 0},
		{"sign(x)", -3, -1},
		{"sign(x)", 0, 0},
		{"x % 1", -0.25, 0.75},
		{"x % -1", 0.25, -0.75},
		{"x // 2", -3, -2},
		{"(x>0)*5", 1, 5},
		{"(x>0)*5", -1, 0},
		{"x == 2", 2, 1},
		{"x != 2", 2, 0},
		{"log10(x)", 1000, 3},
		{"sqrt(x)", 16, 4},
		{"hypot(x, 4)", 3, 5},
		{"arctan2(1, x)", 1, gomath.Pi / 4},
		{"-x**2", 3, -9},
		{"e", 0, gomath.E},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := MustCompile(tt.src).Scalar(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvalIEEEResults(t *testing.T) {
	v, err := MustCompile("1/x").Scalar(0)
	require.NoError(t, err)
	assert.True(t, gomath.IsInf(v, 1))

	v, err = MustCompile("sqrt(x)").Scalar(-1)
	require.NoError(t, err)
	assert.True(t, gomath.IsNaN(v))

	v, err = MustCompile("x % 0").Scalar(3)
	require.NoError(t, err)
	assert.True(t, gomath.IsNaN(v))
}

func TestEvalBroadcast(t *testing.T) {
	xs := []float64{1, 2, 3}

	t.Run("scalar channel stays scalar", func(t *testing.T) {
		out, err := MustCompile("x, 2").Eval(XEnv(Sequence(xs)))
		require.NoError(t, err)
		assert.Equal(t, KindSequence, out[0].Kind())
		assert.Equal(t, KindScalar, out[1].Kind())

		b := out[1].BroadcastTo(out[0])
		assert.Equal(t, []float64{2, 2, 2}, b.Floats())
	})

	t.Run("grid operands", func(t *testing.T) {
		gx := mat.NewDense(2, 2, []float64{0, 1, 0, 1})
		gy := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
		out, err := MustCompile("x + 10*y").Eval(XYEnv(Grid(gx), Grid(gy)))
		require.NoError(t, err)
		assert.Equal(t, KindGrid, out[0].Kind())
		r, c := out[0].Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, [][]float64{{0, 1}, {10, 11}}, out[0].Rows())
	})

	t.Run("shape mismatch", func(t *testing.T) {
		gx := mat.NewDense(2, 2, nil)
		_, err := MustCompile("x + y").Eval(XYEnv(Sequence(xs), Grid(gx)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType))
	})
}

func TestEvalRuntimeErrors(t *testing.T) {
	t.Run("tuple operand", func(t *testing.T) {
		_, err := MustCompile("(1, 2)*x").Eval(XEnv(Scalar(1)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType))
	})

	t.Run("unbound y", func(t *testing.T) {
		_, err := MustCompile("x*y").Eval(XEnv(Scalar(1)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrName))
	})

	t.Run("scalar on tuple", func(t *testing.T) {
		_, err := MustCompile("x, x").Scalar(1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType))
	})
}

func TestEvalConstant(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"-pi*20", -gomath.Pi * 20},
		{"-e", -gomath.E},
		{"1E-13", 1e-13},
		{"2.0*pi", 2 * gomath.Pi},
		{"5000", 5000},
	}
	for _, tt := range tests {
		got, err := EvalConstant(tt.src)
		require.NoError(t, err, tt.src)
		assert.InDelta(t, tt.want, got, 1e-15, tt.src)
	}

	_, err := EvalConstant("x+1")
	assert.True(t, errors.Is(err, ErrName))

	_, err = EvalConstant("1, 2")
	assert.True(t, errors.Is(err, ErrType))

	_, err = EvalConstant("abc")
	assert.True(t, errors.Is(err, ErrName))
}

func TestVocabulary(t *testing.T) {
	names := Vocabulary()
	for _, want := range []string{"sin", "cos", "tan", "sinc", "sinh", "cosh", "tanh", "exp", "log", "log10", "sign", "sqrt"} {
		assert.Contains(t, names, want)
	}
	assert.Contains(t, Constants(), "pi")
	assert.Contains(t, Constants(), "e")
}
