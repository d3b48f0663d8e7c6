// Package math provides the plotting and numerical analysis service.
//
// This package is organized into specialized modules:
//   - expression: parser and vectorised evaluator for the expression language
//   - plotting: plot mode classification, sample grids, view state
//   - numeric: Brent root finding, golden-section extrema, adaptive quadrature
//   - report: fixed format analysis reports
//   - presets: example expressions and named x-ranges
//   - operations: plot and analysis tools
//   - statistics: dataset summaries
//
// Built on gonum.org/v1/gonum for the numerical kernels: floats for sample
// spans and extents, mat for surface meshgrids, integrate/quad for the
// Gauss-Legendre panels and stat for channel summaries.
//
// Example Usage:
//
//	provider := math.NewProvider(nil)
//	result, err := provider.Execute(ctx, "math.evaluate", map[string]interface{}{
//		"expression": "sin(x)/x",
//		"start":      "-pi*20",
//		"stop":       "pi*20",
//	}, nil)
package math
