// Package server provides the HTTP server used by feedbackd: a Gin engine
// behind an h2c handler with an http-level middleware chain and lifecycle
// hooks for the component registry.
//
// # Middleware
//
// Built-in middleware (server/middleware), all of the standard
// func(http.Handler) http.Handler shape:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into the log context
//   - Tracing: OpenTelemetry server spans with propagated trace context
//   - CORS: cross-origin headers and preflight handling
//   - BodySizeLimit: request body limits ("25MB")
//   - RequestLogger: request logging with duration and status
//   - Auth: bearer token authentication, mounted per route group via GinWrap
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /info: service and build information
//   - /version: build version information
package server
