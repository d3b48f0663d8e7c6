// Package server wires configuration, observability, the tool registry
// and the HTTP and WebSocket surfaces into one process.
//
// Server Lifecycle:
//  1. Load configuration from the environment
//  2. Load the preset catalogue (embedded or PLOT_PRESETS_FILE)
//  3. Register the math provider with budgets from configuration
//  4. Setup middleware (recovery, tracing, metrics, CORS, rate limiting)
//  5. Mount the JSON routes, /stream and /metrics
//  6. Wrap with gzip compression and h2c when enabled
//  7. Serve until Shutdown
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logger)
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
