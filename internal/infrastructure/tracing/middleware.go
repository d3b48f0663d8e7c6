package tracing

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Propagation headers
const (
	TraceHeader   = "X-Trace-ID"
	SpanHeader    = "X-Span-ID"
	RequestHeader = "X-Request-ID"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// HTTPMiddleware creates Gin middleware for HTTP tracing. Every response
// carries X-Request-ID, X-Trace-ID and X-Span-ID.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID, parentID := ExtractTraceContext(map[string]string{
			TraceHeader: c.GetHeader(TraceHeader),
			SpanHeader:  c.GetHeader(SpanHeader),
		})
		ctx := WithTrace(c.Request.Context(), traceID, parentID)

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)

		requestID := c.GetHeader(RequestHeader)
		if requestID == "" {
			requestID = NewID()
		}
		span.SetTag("request_id", requestID)
		c.Set(RequestIDKey, requestID)

		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestHeader, requestID)
		c.Header(TraceHeader, string(span.TraceID))
		c.Header(SpanHeader, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		span.SetTag("http.status", strconv.Itoa(c.Writer.Status()))
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}

// RequestID returns the request ID assigned by HTTPMiddleware
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
