// Package provider defines the contract between the dialbridge pipeline and
// a dialogue engine backend.
//
// The interface is backend-agnostic: each adapter handles its own wire
// protocol internally. The teneo subpackage implements the Teneo
// Interaction Engine ("TIE") HTTP API.
package provider

import (
	"context"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Provider sends one user input to a dialogue engine and returns its reply.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "teneo").
	Name() string

	// SendInput delivers req to the engine. sessionID is the session returned
	// by a previous call for the same conversation, or session.NoSession to
	// start a new one. Failures are returned as *api.EngineError.
	SendInput(ctx context.Context, sessionID string, req *api.EngineRequest) (*api.EngineResponse, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}
