package operations

import (
	gomath "math"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
)

// Number returns v, or nil when v is NaN or infinite. JSON has no encoding
// for those and the renderer treats null as a gap.
func Number(v float64) interface{} {
	if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
		return nil
	}
	return v
}

// Series converts samples with Number
func Series(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = Number(v)
	}
	return out
}

// Matrix converts a grid row by row with Number
func Matrix(rows [][]float64) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = Series(row)
	}
	return out
}

// Channel encodes one evaluated output as a list or a list of rows
func Channel(v expression.Value) interface{} {
	if v.Kind() == expression.KindGrid {
		return Matrix(v.Rows())
	}
	return Series(v.Floats())
}

// EncodeDataset renders a dataset as the renderer consumes it
func EncodeDataset(ds *plotting.Dataset) map[string]interface{} {
	rows, cols := ds.Domain.Dims()
	channels := make([]interface{}, len(ds.Channels))
	for i, ch := range ds.Channels {
		channels[i] = Channel(ch)
	}

	data := map[string]interface{}{
		"expression": ds.Expression,
		"mode":       ds.Mode,
		"title":      ds.Title(),
		"labels":     ds.Labels,
		"start":      Number(ds.Start),
		"stop":       Number(ds.Stop),
		"resolution": ds.Resolution,
		"domain": map[string]interface{}{
			"axis": Series(ds.Domain.Axis),
			"rows": rows,
			"cols": cols,
		},
		"channels": channels,
		"extents":  ds.Extents(),
	}

	if ds.Mode == plotting.ModePolar && len(ds.Channels) == 1 {
		theta, r := plotting.PolarProject(ds.Domain.Axis, ds.Channels[0].Floats())
		data["projected"] = map[string]interface{}{
			"theta": Series(theta),
			"r":     Series(r),
		}
	}
	return data
}
