package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/plotter/internal/providers/math"
	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	registry := service.NewRegistry()
	metrics := monitoring.NewMetrics()
	ops := common.NewMathOps()
	ops.Observer = metrics
	require.NoError(t, registry.Register(math.NewProvider(ops)))

	router := gin.New()
	router.Use(monitoring.Middleware(metrics))
	NewHandlers(registry, metrics, nil).Register(router)
	return router, metrics
}

func do(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = do(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "metrics")
	assert.Equal(t, float64(1), body["service_registry"].(map[string]interface{})["total_services"])
}

func TestListServices(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["services"], 1)

	w = do(router, http.MethodGet, "/services?category=math", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["services"], 1)

	w = do(router, http.MethodGet, "/services?category=plot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["services"])

	w = do(router, http.MethodGet, "/services?category=games", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverServices(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/services/discover?q=find+roots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "find roots", body["query"])
	assert.Len(t, body["services"], 1)

	w = do(router, http.MethodGet, "/services/discover", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	router, metrics := newRouter(t)

	w := do(router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "math.classify",
		"params":  map[string]interface{}{"expression": "sin(x),cos(x)"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "parametric2d", body["data"].(map[string]interface{})["mode"])

	tests := []struct {
		name   string
		toolID string
		status int
	}{
		{"malformed", "classify", http.StatusBadRequest},
		{"missing service", "plot.evaluate", http.StatusNotFound},
		{"missing tool", "math.add", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/services/execute", map[string]interface{}{
				"tool_id": tt.toolID,
				"params":  map[string]interface{}{},
			})
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}

	w = do(router, http.MethodPost, "/services/execute", `{"params":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, int64(4), metrics.Snapshot().TotalErrors)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceErrors.WithLabelValues("math", "add", "execute")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceCalls.WithLabelValues("math", "classify", "success")))
}

func TestEvaluate(t *testing.T) {
	router, metrics := newRouter(t)

	w := do(router, http.MethodPost, "/plot/evaluate", map[string]interface{}{
		"expression": "sin(x)",
		"start":      "-pi",
		"stop":       "pi",
		"resolution": 200,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "single", body["mode"])
	channels := body["channels"].([]interface{})
	require.Len(t, channels, 1)
	assert.Len(t, channels[0], 200)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Evaluations)
}

func TestEvaluateGapsEncodeAsNull(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/evaluate", map[string]interface{}{
		"expression": "log(x)",
		"start":      "-1",
		"stop":       "1",
		"resolution": 201,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "null"))
}

func TestEvaluateErrors(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
		kind   string
	}{
		{"syntax", map[string]interface{}{"expression": "sin(", "start": "0", "stop": "1"}, http.StatusUnprocessableEntity, "syntax"},
		{"name", map[string]interface{}{"expression": "foo(x)", "start": "0", "stop": "1"}, http.StatusUnprocessableEntity, "name"},
		{"interval", map[string]interface{}{"expression": "x", "start": "one", "stop": "1"}, http.StatusBadRequest, "interval"},
		{"resolution", map[string]interface{}{"expression": "x", "start": "0", "stop": "1", "resolution": 3}, http.StatusBadRequest, "resolution"},
		{"missing expression", map[string]interface{}{"start": "0", "stop": "1"}, http.StatusBadRequest, ""},
		{"malformed body", `{"expression":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/plot/evaluate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.NotEmpty(t, body["error"])
			if tt.kind != "" {
				assert.Equal(t, tt.kind, body["kind"])
			}
		})
	}
}

func TestEvaluateBodyTooLarge(t *testing.T) {
	router, _ := newRouter(t)

	huge := `{"expression":"` + strings.Repeat("x+", MaxBodyBytes) + `x","start":"0","stop":"1"}`
	w := do(router, http.MethodPost, "/plot/evaluate", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestClassify(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/classify", map[string]interface{}{"expression": "x*y"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "surface", decode(t, w)["mode"])
}

func TestAnalyze(t *testing.T) {
	router, metrics := newRouter(t)

	w := do(router, http.MethodPost, "/plot/analyze", map[string]interface{}{
		"kind":       "root",
		"expression": "x**3-15*x+3",
		"start":      "0",
		"stop":       "1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["converged"])
	assert.InDelta(t, 0.2005376460748, body["value"].(float64), 1e-12)
	assert.Contains(t, body["report"], "Root 0.200537646075")

	w = do(router, http.MethodPost, "/plot/analyze", map[string]interface{}{
		"kind":       "integral",
		"expression": "sin(x)",
		"start":      "0",
		"stop":       "pi",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 2.0, decode(t, w)["value"].(float64), 1e-10)

	assert.Equal(t, int64(2), metrics.Snapshot().Analyses)
}

func TestAnalyzeBracketingIsNotAnHTTPError(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/analyze", map[string]interface{}{
		"kind":       "root",
		"expression": "x**2+1",
		"start":      "-1",
		"stop":       "1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["converged"])
	assert.Equal(t, "Root finding error\nFunction has same sign at left and right bounds", body["report"])
}

func TestAnalyzeRejects(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/analyze", map[string]interface{}{
		"kind": "derivative", "expression": "x", "start": "0", "stop": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/plot/analyze", map[string]interface{}{
		"kind": "integral", "expression": "sin(x),cos(x)", "start": "0", "stop": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "mode", decode(t, w)["kind"])
}

func TestView(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/view", map[string]interface{}{
		"action":     "zoom_in",
		"expression": "x",
		"start":      "-3",
		"stop":       "3",
		"resolution": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	state := decode(t, w)["state"].(map[string]interface{})
	assert.InDelta(t, -1.0, state["start"].(float64), 1e-12)
	assert.InDelta(t, 1.0, state["stop"].(float64), 1e-12)
}

func TestSummary(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/plot/summary", map[string]interface{}{
		"expression": "x",
		"start":      "0",
		"stop":       "1",
		"resolution": 101,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(101), body["points"])
}

func TestPresets(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/plot/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["presets"], 16)

	w = do(router, http.MethodGet, "/plot/presets?name=beat-frequency", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sin(x)+sin(1.1*x)", decode(t, w)["expression"])

	w = do(router, http.MethodGet, "/plot/presets?name=missing", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	router, _ := newRouter(t)

	do(router, http.MethodPost, "/plot/classify", map[string]interface{}{"expression": "x"})
	w := do(router, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "uptime_seconds")
}
