// Package server hosts formkit form components over HTTP and WebSocket.
//
// Each WebSocket connection owns one form instance. Client events (change,
// blur, submit, reset, patch) are applied to that instance on the session
// goroutine, and a full state snapshot is pushed back after every
// mutation. The initial page is served as server-side rendered HTML from
// the same component.
//
// Routing is chi, the live connection is gorilla/websocket, metrics are
// Prometheus (exposed on /metrics), and the submit path is traced with
// OpenTelemetry against the global tracer provider.
package server
