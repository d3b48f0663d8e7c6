// Package ws streams tool calls over a WebSocket so an editor can
// re-evaluate on every keystroke without a request per edit.
//
// Message Types (Client → Server):
//   - evaluate: sample params as math.evaluate
//   - analyze: run params["kind"] (root, maximum, minimum, integral)
//   - execute: run any registered tool_id
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: greeting carrying the session ID
//   - result: tool data
//   - error: failure with message and, for expression errors, kind
//   - pong: reply to ping
//
// Every reply echoes the id of the message that caused it.
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, tracer, logger, cfg.Stream)
//	router.GET("/stream", handler.HandleConnection)
package ws
