package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/plotter/internal/infrastructure/logging"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/plotter/internal/providers/math"
	"github.com/GriffinCanCode/plotter/internal/service"
	"github.com/GriffinCanCode/plotter/internal/types"
)

// MaxBodyBytes caps a JSON request body
const MaxBodyBytes = 1 << 20

// Version is reported by the root endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Plotter Service (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"metrics":          h.metrics.Snapshot(),
	})
}

// Stats returns the metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices ranks services against the q query parameter
func (h *Handlers) DiscoverServices(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"services": h.registry.Discover(query, 5),
	})
}

// ExecuteService executes a service tool and returns the raw result envelope
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.execute(c, req.ToolID, req.Params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Evaluate samples an expression
func (h *Handlers) Evaluate(c *gin.Context) {
	h.tool(c, "math.evaluate")
}

// Classify reports the display mode of an expression
func (h *Handlers) Classify(c *gin.Context) {
	h.tool(c, "math.classify")
}

// View applies a zoom or pan to a plot state
func (h *Handlers) View(c *gin.Context) {
	h.tool(c, "math.view")
}

// Summary describes the sampled channels of an expression
func (h *Handlers) Summary(c *gin.Context) {
	h.tool(c, "math.summary")
}

// Analyze runs the analysis named by the "kind" field of the body
func (h *Handlers) Analyze(c *gin.Context) {
	var params map[string]interface{}
	if !h.bind(c, &params) {
		return
	}

	kind, _ := params["kind"].(string)
	toolID, ok := math.AnalysisTool(kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of root, maximum, minimum or integral"})
		return
	}
	delete(params, "kind")
	h.respond(c, toolID, params)
}

// Presets lists the preset catalogue, or one preset when name is given
func (h *Handlers) Presets(c *gin.Context) {
	params := map[string]interface{}{}
	if name := c.Query("name"); name != "" {
		params["name"] = name
	}
	h.respond(c, "math.presets", params)
}

func (h *Handlers) tool(c *gin.Context, toolID string) {
	var params map[string]interface{}
	if !h.bind(c, &params) {
		return
	}
	h.respond(c, toolID, params)
}

// respond runs toolID and maps the result onto a status code: tool data on
// success, 422 for expression errors and 400 for other rejected input
func (h *Handlers) respond(c *gin.Context, toolID string, params map[string]interface{}) {
	result, err := h.execute(c, toolID, params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if !result.Success {
		msg := "tool failed"
		if result.Error != nil {
			msg = *result.Error
		}
		body := gin.H{"error": msg}
		if result.Kind != "" {
			body["kind"] = result.Kind
		}
		c.JSON(statusForKind(result.Kind), body)
		return
	}
	c.JSON(http.StatusOK, result.Data)
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	requestID := tracing.RequestID(c)
	appCtx := &types.Context{}
	if requestID != "" {
		appCtx.RequestID = &requestID
	}

	serviceID, toolName, _ := strings.Cut(toolID, ".")
	timer := monitoring.NewTimer(h.metrics, serviceID, toolName)

	result, err := h.registry.Execute(c.Request.Context(), toolID, params, appCtx)
	switch {
	case err != nil:
		timer.Stop("error")
		h.metrics.RecordServiceError(serviceID, toolName, "execute")
		h.logger.Request(requestID).Warn("tool execution failed",
			zap.String("tool_id", toolID), zap.Error(err))
	case !result.Success:
		timer.Stop("failure")
		h.metrics.RecordServiceError(serviceID, toolName, kindLabel(result.Kind))
	default:
		timer.Stop("success")
	}
	return result, err
}

func (h *Handlers) bind(c *gin.Context, v interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// statusFor maps registry errors onto status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrServiceNotFound), errors.Is(err, types.ErrToolNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidToolID):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func statusForKind(kind string) int {
	switch kind {
	case "syntax", "name", "type":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func kindLabel(kind string) string {
	if kind == "" {
		return "invalid"
	}
	return kind
}
