package common

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
	"github.com/GriffinCanCode/plotter/internal/providers/math/presets"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// MathOps is the configuration shared by every tool module
type MathOps struct {
	Limits     plotting.Limits
	Analysis   plotting.AnalysisDefaults
	Resolution int
	Catalog    *presets.Catalog
	Observer   Observer
}

// NewMathOps returns ops with the stock limits, budgets and catalogue
func NewMathOps() *MathOps {
	catalog, err := presets.Default()
	if err != nil {
		panic(fmt.Sprintf("builtin preset catalogue: %v", err))
	}
	return &MathOps{
		Limits:     plotting.DefaultLimits(),
		Analysis:   plotting.DefaultAnalysis(),
		Resolution: 1000,
		Catalog:    catalog,
	}
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFrom creates a failed result from err, tagging evaluator errors
// with their kind
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	return &types.Result{Success: false, Error: &msg, Kind: Kind(err)}, nil
}

// Kind classifies err for callers: the evaluator kinds, "interval",
// "resolution", "mode" or "invalid"
func Kind(err error) string {
	if kind := expression.ErrorKind(err); kind != "" {
		return kind
	}
	switch {
	case errors.Is(err, plotting.ErrInterval):
		return "interval"
	case errors.Is(err, plotting.ErrResolution):
		return "resolution"
	case errors.Is(err, plotting.ErrUnsupportedChannels), errors.Is(err, plotting.ErrAnalysisMode):
		return "mode"
	default:
		return "invalid"
	}
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetInt extracts an integral number. Fractional values are rejected.
func GetInt(params map[string]interface{}, key string) (int, bool) {
	f, ok := GetNumber(params, key)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetBool extracts bool from params
func GetBool(params map[string]interface{}, key string) (bool, bool) {
	val, ok := params[key].(bool)
	return val, ok
}

// GetText extracts a mini-expression field. Numbers are accepted and
// rendered back to text so "start": -3 and "start": "-3" mean the same.
func GetText(params map[string]interface{}, key string) (string, bool) {
	if s, ok := GetString(params, key); ok {
		return s, true
	}
	if f, ok := GetNumber(params, key); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}

// PlotRequest reads a sampling request from params. Resolution falls back
// to the configured default.
func (m *MathOps) PlotRequest(params map[string]interface{}) (plotting.Request, error) {
	expr, ok := GetString(params, "expression")
	if !ok {
		return plotting.Request{}, fmt.Errorf("expression parameter required")
	}
	start, ok := GetText(params, "start")
	if !ok {
		return plotting.Request{}, fmt.Errorf("start parameter required")
	}
	stop, ok := GetText(params, "stop")
	if !ok {
		return plotting.Request{}, fmt.Errorf("stop parameter required")
	}

	resolution := m.Resolution
	if _, present := params["resolution"]; present {
		if resolution, ok = GetInt(params, "resolution"); !ok {
			return plotting.Request{}, fmt.Errorf("resolution must be an integer")
		}
	}
	polar, _ := GetBool(params, "polar")

	return plotting.Request{
		Expression: expr,
		Start:      start,
		Stop:       stop,
		Resolution: resolution,
		Polar:      polar,
	}, nil
}
