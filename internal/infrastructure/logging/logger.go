package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with the child loggers used by the transports.
type Logger struct {
	*zap.Logger
}

// Config selects the level, encoding and sinks. Development switches to
// the coloured console encoder with stack traces on warnings.
type Config struct {
	Level       string
	Development bool
	OutputPaths []string
}

// New builds a logger from cfg. An empty OutputPaths writes to stdout.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.EncoderConfig = encoder(cfg.Development)
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.OutputPaths = cfg.OutputPaths
	if len(zapCfg.OutputPaths) == 0 {
		zapCfg.OutputPaths = []string{"stdout"}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Session returns a child logger tagged with a WebSocket session ID.
func (l *Logger) Session(id string) *Logger {
	return &Logger{Logger: l.With(zap.String("session_id", id))}
}

// Request returns a child logger tagged with a request ID.
func (l *Logger) Request(id string) *Logger {
	return &Logger{Logger: l.With(zap.String("request_id", id))}
}

func encoder(development bool) zapcore.EncoderConfig {
	if development {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return enc
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}
