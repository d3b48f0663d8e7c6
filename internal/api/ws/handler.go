package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/plotter/internal/infrastructure/config"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/logging"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/plotter/internal/providers/math"
	"github.com/GriffinCanCode/plotter/internal/service"
	"github.com/GriffinCanCode/plotter/internal/shared/id"
	"github.com/GriffinCanCode/plotter/internal/types"
)

const writeWait = 10 * time.Second

// Handler manages WebSocket connections
type Handler struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *logging.Logger
	cfg      config.StreamConfig
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	registry *service.Registry,
	metrics *monitoring.Metrics,
	tracer *tracing.Tracer,
	logger *logging.Logger,
	cfg config.StreamConfig,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS middleware governs browser origins
			},
		},
	}
}

// session is one upgraded connection. Only the read loop writes data
// frames; the ping loop uses WriteControl, which may run concurrently.
type session struct {
	id     id.SessionID
	conn   *websocket.Conn
	logger *logging.Logger
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s := &session{id: id.NewSessionID(), conn: conn}
	s.logger = h.logger.Session(s.id.String())

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	s.logger.Info("websocket session opened", zap.String("remote", c.ClientIP()))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if h.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.cfg.MaxMessageBytes)
	}
	if interval := h.pingInterval(); interval > 0 {
		wait := 2 * interval
		_ = conn.SetReadDeadline(time.Now().Add(wait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wait))
		})
		go h.keepAlive(ctx, s, interval)
	}

	h.send(s, map[string]interface{}{
		"type":       "system",
		"session_id": s.id,
		"message":    "Connected to Plotter Service (Go)",
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.metrics.RecordWSMessage("in", "malformed")
			h.sendError(s, "", "", "malformed message", "")
			continue
		}
		h.metrics.RecordWSMessage("in", messageLabel(msg.Type))
		h.dispatch(ctx, s, msg)
	}
	s.logger.Info("websocket session closed")
}

func (h *Handler) dispatch(ctx context.Context, s *session, msg types.WSMessage) {
	switch msg.Type {
	case "ping":
		h.send(s, map[string]interface{}{"type": "pong", "id": msg.ID})
	case "evaluate":
		h.run(ctx, s, msg.ID, "math.evaluate", msg.Params)
	case "analyze":
		kind, _ := msg.Params["kind"].(string)
		toolID, ok := math.AnalysisTool(kind)
		if !ok {
			h.sendError(s, msg.ID, "", "kind must be one of root, maximum, minimum or integral", "")
			return
		}
		params := make(map[string]interface{}, len(msg.Params))
		for k, v := range msg.Params {
			if k != "kind" {
				params[k] = v
			}
		}
		h.run(ctx, s, msg.ID, toolID, params)
	case "execute":
		if msg.ToolID == "" {
			h.sendError(s, msg.ID, "", "tool_id required", "")
			return
		}
		h.run(ctx, s, msg.ID, msg.ToolID, msg.Params)
	default:
		h.sendError(s, msg.ID, "", "unknown message type", "")
	}
}

// run executes one tool call inside its own span and replies with the
// tool data or an error frame
func (h *Handler) run(ctx context.Context, s *session, msgID, toolID string, params map[string]interface{}) {
	if params == nil {
		params = map[string]interface{}{}
	}

	span, ctx := h.tracer.StartSpan(ctx, "ws "+toolID)
	span.SetTag("session_id", s.id.String())
	span.SetTag("tool_id", toolID)
	defer func() {
		span.Finish()
		h.tracer.Submit(span)
	}()

	serviceID, toolName, _ := strings.Cut(toolID, ".")
	timer := monitoring.NewTimer(h.metrics, serviceID, toolName)

	sessionID := s.id.String()
	result, err := h.registry.Execute(ctx, toolID, params, &types.Context{SessionID: &sessionID})
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordServiceError(serviceID, toolName, "execute")
		span.SetError(err)
		h.sendError(s, msgID, toolID, err.Error(), "")
		return
	}
	if !result.Success {
		timer.Stop("failure")
		msg := "tool failed"
		if result.Error != nil {
			msg = *result.Error
		}
		span.SetTag("error.kind", result.Kind)
		h.sendError(s, msgID, toolID, msg, result.Kind)
		return
	}
	timer.Stop("success")

	h.send(s, map[string]interface{}{
		"type":    "result",
		"id":      msgID,
		"tool_id": toolID,
		"data":    result.Data,
	})
}

func (h *Handler) keepAlive(ctx context.Context, s *session, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.logger.Debug("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// messageLabel keeps client supplied types out of the metric label set
func messageLabel(msgType string) string {
	switch msgType {
	case "ping", "evaluate", "analyze", "execute":
		return msgType
	default:
		return "unknown"
	}
}

func (h *Handler) pingInterval() time.Duration {
	return time.Duration(h.cfg.PingSeconds) * time.Second
}

func (h *Handler) send(s *session, data map[string]interface{}) error {
	payload, err := sonic.Marshal(data)
	if err != nil {
		s.logger.Error("websocket encode failed", zap.Error(err))
		return err
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	if frameType, ok := data["type"].(string); ok {
		h.metrics.RecordWSMessage("out", frameType)
	}
	return nil
}

func (h *Handler) sendError(s *session, msgID, toolID, msg, kind string) error {
	frame := map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	}
	if msgID != "" {
		frame["id"] = msgID
	}
	if toolID != "" {
		frame["tool_id"] = toolID
	}
	if kind != "" {
		frame["kind"] = kind
	}
	return h.send(s, frame)
}
