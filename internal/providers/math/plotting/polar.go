package plotting

import (
	gomath "math"
)

// PolarProject prepares (theta, r) samples for a renderer that cannot draw
// negative radii: points with r < 0 are rotated by pi and drawn at |r|.
func PolarProject(theta, r []float64) ([]float64, []float64) {
	n := len(theta)
	if len(r) < n {
		n = len(r)
	}
	outTheta := make([]float64, n)
	outR := make([]float64, n)
	for i := 0; i < n; i++ {
		t := theta[i]
		if r[i] < 0 {
			t += gomath.Pi
		}
		outTheta[i] = t
		outR[i] = gomath.Abs(r[i])
	}
	return outTheta, outR
}
