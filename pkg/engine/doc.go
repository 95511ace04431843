// Package engine implements the turn pipeline of the dialbridge webhook.
// The Engine struct implements transport.CallHandler: for each call event
// it serializes on the call id, looks up the engine session, invokes the
// dialogue engine, records the returned session, and composes exactly one
// voice directive. Engine failures are answered with a fallback prompt
// instead of an error, so the caller is never dropped. The turn journal is
// optional and written best-effort.
package engine
