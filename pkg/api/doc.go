// Package api defines the core types exchanged between the voice platform,
// the dialbridge pipeline and the dialogue engine.
//
// The package performs no I/O. It holds the normalized inbound call event,
// the engine request and reply shapes, the recognized engine output
// parameter names, the turn record kept by the journal, and the structured
// error types used across the service.
//
// Core types:
//   - [CallEvent]: normalized call-progress notification from the voice platform
//   - [EngineRequest]: input sent to the dialogue engine for one turn
//   - [EngineResponse]: engine reply carrying the session id, text and parameters
//   - [Turn]: journal record of one request/reply exchange
//   - [EngineError]: classified dialogue engine failure
//   - [APIError]: structured error for the JSON read endpoints
package api
