package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Plot      PlotConfig
	Analysis  AnalysisConfig
	Stream    StreamConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"8000"`
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Compression bool   `envconfig:"HTTP_COMPRESSION" default:"true"`
	H2C         bool   `envconfig:"HTTP_H2C" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string   `envconfig:"LOG_LEVEL" default:"info"`
	Development bool     `envconfig:"LOG_DEV" default:"false"`
	Output      []string `envconfig:"LOG_OUTPUT" default:"stdout"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// PlotConfig holds sampling configuration.
type PlotConfig struct {
	Resolution    int    `envconfig:"PLOT_RESOLUTION" default:"1000"`
	MinResolution int    `envconfig:"PLOT_MIN_RESOLUTION" default:"100"`
	MaxResolution int    `envconfig:"PLOT_MAX_RESOLUTION" default:"10000"`
	PresetsFile   string `envconfig:"PLOT_PRESETS_FILE"`
}

// AnalysisConfig holds the default budgets of the numerical routines.
type AnalysisConfig struct {
	IterationCeiling   int     `envconfig:"ANALYSIS_ITERATION_CEILING" default:"1000"`
	MaxIterations      int     `envconfig:"ANALYSIS_MAX_ITERATIONS" default:"20000"`
	RootTolerance      float64 `envconfig:"ANALYSIS_ROOT_TOLERANCE" default:"1e-13"`
	RootIterations     int     `envconfig:"ANALYSIS_ROOT_ITERATIONS" default:"5000"`
	ExtremumTolerance  float64 `envconfig:"ANALYSIS_EXTREMUM_TOLERANCE" default:"1e-9"`
	ExtremumIterations int     `envconfig:"ANALYSIS_EXTREMUM_ITERATIONS" default:"1000"`
	IntegralTolerance  float64 `envconfig:"ANALYSIS_INTEGRAL_TOLERANCE" default:"1e-8"`
	IntegralIterations int     `envconfig:"ANALYSIS_INTEGRAL_ITERATIONS" default:"5000"`
}

// StreamConfig holds WebSocket configuration.
type StreamConfig struct {
	MaxMessageBytes int64 `envconfig:"STREAM_MAX_MESSAGE_BYTES" default:"65536"`
	PingSeconds     int   `envconfig:"STREAM_PING_SECONDS" default:"30"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			Compression: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Output:      []string{"stdout"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Plot: PlotConfig{
			Resolution:    1000,
			MinResolution: 100,
			MaxResolution: 10000,
		},
		Analysis: AnalysisConfig{
			IterationCeiling:   1000,
			MaxIterations:      20000,
			RootTolerance:      1e-13,
			RootIterations:     5000,
			ExtremumTolerance:  1e-9,
			ExtremumIterations: 1000,
			IntegralTolerance:  1e-8,
			IntegralIterations: 5000,
		},
		Stream: StreamConfig{
			MaxMessageBytes: 64 * 1024,
			PingSeconds:     30,
		},
	}
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
	p := c.Plot
	switch {
	case p.MinResolution <= 0:
		return fmt.Errorf("config: PLOT_MIN_RESOLUTION must be positive")
	case p.MaxResolution < p.MinResolution:
		return fmt.Errorf("config: PLOT_MAX_RESOLUTION %d below minimum %d", p.MaxResolution, p.MinResolution)
	case p.Resolution < p.MinResolution || p.Resolution > p.MaxResolution:
		return fmt.Errorf("config: PLOT_RESOLUTION %d not in [%d, %d]", p.Resolution, p.MinResolution, p.MaxResolution)
	}

	a := c.Analysis
	switch {
	case a.IterationCeiling <= 50:
		return fmt.Errorf("config: ANALYSIS_ITERATION_CEILING must exceed 50")
	case !(a.RootTolerance > 0) || !(a.ExtremumTolerance > 0) || !(a.IntegralTolerance > 0):
		return fmt.Errorf("config: analysis tolerances must be positive")
	case a.RootIterations <= 0 || a.ExtremumIterations <= 0 || a.IntegralIterations <= 0:
		return fmt.Errorf("config: analysis iteration budgets must be positive")
	case a.MaxIterations < a.RootIterations || a.MaxIterations < a.ExtremumIterations || a.MaxIterations < a.IntegralIterations:
		return fmt.Errorf("config: ANALYSIS_MAX_ITERATIONS %d below a default budget", a.MaxIterations)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("config: rate limit RPS and burst must be positive when enabled")
	}
	if c.Stream.MaxMessageBytes <= 0 || c.Stream.PingSeconds <= 0 {
		return fmt.Errorf("config: stream limits must be positive")
	}
	return nil
}
