// Package main is the entry point for the plotter backend server.
//
// The server samples mathematical expressions for plotting and runs the
// numerical analyses (roots, extrema, integrals) behind the analysis
// dialog.
//
// The server provides:
//   - REST API for evaluation, classification, analysis and presets
//   - WebSocket streaming for live re-evaluation
//   - Prometheus metrics on /metrics
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//
// Usage:
//
//	PORT=8000 LOG_LEVEL=debug LOG_DEV=true ./server
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
