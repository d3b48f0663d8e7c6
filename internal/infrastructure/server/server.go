package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apihttp "github.com/GriffinCanCode/plotter/internal/api/http"
	"github.com/GriffinCanCode/plotter/internal/api/middleware"
	"github.com/GriffinCanCode/plotter/internal/api/ws"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/config"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/logging"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/plotter/internal/infrastructure/tracing"
	mathProvider "github.com/GriffinCanCode/plotter/internal/providers/math"
	"github.com/GriffinCanCode/plotter/internal/providers/math/common"
	"github.com/GriffinCanCode/plotter/internal/providers/math/plotting"
	"github.com/GriffinCanCode/plotter/internal/providers/math/presets"
	"github.com/GriffinCanCode/plotter/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	http     *http.Server
	registry *service.Registry
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing Plotter Server",
		zap.String("port", cfg.Server.Port),
		zap.Bool("compression", cfg.Server.Compression),
		zap.Bool("h2c", cfg.Server.H2C),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	tracer := tracing.New("plotter", logger.Logger)

	catalog, err := presets.Load(cfg.Plot.PresetsFile)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	logger.Info("Preset catalogue loaded",
		zap.String("file", cfg.Plot.PresetsFile),
		zap.Int("presets", len(catalog.Presets)),
		zap.Int("ranges", len(catalog.Ranges)),
	)

	serviceRegistry := service.NewRegistry()
	if err := serviceRegistry.Register(mathProvider.NewProvider(MathOps(cfg, catalog, metrics))); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register math provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(serviceRegistry, metrics, logger)
	handlers.Register(router)

	wsHandler := ws.NewHandler(serviceRegistry, metrics, tracer, logger, cfg.Stream)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s := &Server{
		router:   router,
		registry: serviceRegistry,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.handler = s.wrap(router)
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// MathOps builds the tool configuration from cfg. Evaluation and analysis
// outcomes are reported to metrics.
func MathOps(cfg *config.Config, catalog *presets.Catalog, metrics *monitoring.Metrics) *common.MathOps {
	ops := &common.MathOps{
		Limits: plotting.Limits{
			MinResolution: cfg.Plot.MinResolution,
			MaxResolution: cfg.Plot.MaxResolution,
		},
		Analysis: plotting.AnalysisDefaults{
			Root:          plotting.Budget{Tolerance: cfg.Analysis.RootTolerance, MaxIterations: cfg.Analysis.RootIterations},
			Extremum:      plotting.Budget{Tolerance: cfg.Analysis.ExtremumTolerance, MaxIterations: cfg.Analysis.ExtremumIterations},
			Integral:      plotting.Budget{Tolerance: cfg.Analysis.IntegralTolerance, MaxIterations: cfg.Analysis.IntegralIterations},
			Ceiling:       cfg.Analysis.IterationCeiling,
			MaxIterations: cfg.Analysis.MaxIterations,
		},
		Resolution: cfg.Plot.Resolution,
		Catalog:    catalog,
	}
	if metrics != nil {
		ops.Observer = metrics
	}
	return ops
}

// wrap applies the transport options. WebSocket upgrades bypass
// compression so the connection can be hijacked.
func (s *Server) wrap(h http.Handler) http.Handler {
	if s.config.Server.Compression {
		plain, gz := h, gzhttp.GzipHandler(h)
		h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				plain.ServeHTTP(w, r)
				return
			}
			gz.ServeHTTP(w, r)
		})
	}
	if s.config.Server.H2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}
	return h
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run starts the HTTP server and blocks until it stops. A clean Shutdown
// returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown incomplete", zap.Error(err))
	}

	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
