/*
Package monitoring provides Prometheus metrics for the plotter server.

# Overview

Metrics tracks HTTP requests, service tool calls, expression evaluations,
analysis runs and WebSocket sessions. Every Metrics owns a private
registry, so tests and embedded servers can create as many as they need.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Feed evaluation outcomes from the math provider
	ops.Observer = metrics

	// Time operations
	timer := monitoring.NewTimer(metrics, "math", "math.root")
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
