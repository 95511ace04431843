// Package transport defines the handler interfaces and middleware chain for
// the dialbridge webhook transport layer.
//
// The transport layer bridges the voice platform and dialbridge's turn
// pipeline. The HTTP adapter decodes call-progress notifications into
// api.CallEvent values, dispatches them to a CallHandler, and writes the
// returned markup back as text/xml.
//
// # Handler Interfaces
//
//   - CallHandler handles one call-progress notification and returns the
//     markup for exactly one directive.
//   - TurnStore persists and lists the turn journal. It is optional; the
//     journal read endpoints are registered only when a store is configured.
//
// # Middleware
//
// The middleware chain wraps CallHandler with cross-cutting concerns.
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID), and structured logging via log/slog.
//
// # Call Serialization
//
// CallLocks provides per-call mutual exclusion so that two notifications
// for the same call never interleave their session lookups and updates.
package transport
