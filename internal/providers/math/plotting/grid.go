package plotting

import (
	"errors"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
)

// ErrResolution is returned when a sample count is outside the allowed range
var ErrResolution = errors.New("plotting: resolution out of range")

// Domain is the sampled input of an evaluation.
//
// Line modes use Axis directly. Surface mode uses the meshgrid pair X, Y of
// size m×m built from Axis, with X varying along columns and Y along rows.
type Domain struct {
	Mode Mode
	Axis []float64
	X    *mat.Dense
	Y    *mat.Dense
}

// Linspace returns n evenly spaced samples from start to stop inclusive.
// Reversed intervals produce descending samples.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	out := floats.Span(make([]float64, n), start, stop)
	out[n-1] = stop
	return out
}

// SurfaceSide returns the per-axis sample count for a surface of n points
func SurfaceSide(n int) int {
	if n <= 0 {
		return 0
	}
	return int(gomath.Floor(gomath.Sqrt(float64(n))))
}

// BuildDomain samples [start, stop] for mode. n is not validated here;
// callers check it with ValidateResolution first.
func BuildDomain(start, stop float64, n int, mode Mode) Domain {
	if !mode.IsSurface() {
		return Domain{Mode: mode, Axis: Linspace(start, stop, n)}
	}

	m := SurfaceSide(n)
	axis := Linspace(start, stop, m)
	if m == 0 {
		return Domain{Mode: mode, Axis: axis}
	}
	x := mat.NewDense(m, m, nil)
	y := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			x.Set(i, j, axis[j])
			y.Set(i, j, axis[i])
		}
	}
	return Domain{Mode: mode, Axis: axis, X: x, Y: y}
}

// ValidateResolution rejects sample counts outside [min, max]
func ValidateResolution(n, min, max int) error {
	if n < min || n > max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrResolution, n, min, max)
	}
	return nil
}

// Env binds the domain variables for evaluation
func (d Domain) Env() expression.Env {
	if d.Mode.IsSurface() && d.X != nil {
		return expression.XYEnv(expression.Grid(d.X), expression.Grid(d.Y))
	}
	return expression.XEnv(expression.Sequence(d.Axis))
}

// Dims returns the domain shape: (1, n) for lines, (m, m) for surfaces
func (d Domain) Dims() (int, int) {
	if d.Mode.IsSurface() {
		m := len(d.Axis)
		return m, m
	}
	return 1, len(d.Axis)
}

// Len returns the total number of sample points
func (d Domain) Len() int {
	r, c := d.Dims()
	return r * c
}
