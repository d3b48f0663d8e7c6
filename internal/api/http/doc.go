// Package http exposes the service registry and the plotting tools over
// JSON endpoints.
//
// Tool endpoints answer 200 with the tool data, 422 with {"error","kind"}
// for expression errors and 400 for other rejected input.
package http
