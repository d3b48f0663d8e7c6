/*
Package tracing provides lightweight request tracing.

# Overview

Each HTTP request and each WebSocket message gets a span. Spans are logged
through zap by a single collector goroutine, so handlers never block on
logging.

# Usage

	tracer := tracing.New("plotter", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "ws.evaluate")
	span.SetTag("session_id", sid)
	span.Finish()
	tracer.Submit(span)

# Trace Format

Traces use standard HTTP headers for propagation:
  - X-Trace-ID: Unique identifier for entire request flow
  - X-Span-ID: Identifier for current operation
  - X-Request-ID: Per request identifier, echoed when the client sends one
*/
package tracing
