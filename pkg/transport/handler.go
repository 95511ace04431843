package transport

import (
	"context"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Reply is the outcome of handling one call event: the serialized markup
// and a description of the directive it encodes.
type Reply struct {
	// Markup is the TwiML document returned to the voice platform.
	Markup string

	// Directive names the directive kind (hangup, transfer, gather_dtmf,
	// gather_speech).
	Directive string

	// Fallback is true when the engine failed and a fallback prompt was
	// produced instead of engine output.
	Fallback bool
}

// CallHandler handles one call-progress notification. It is the primary
// handler contract between the HTTP adapter and the pipeline.
type CallHandler interface {
	HandleCall(ctx context.Context, ev *api.CallEvent) (*Reply, error)
}

// CallHandlerFunc is an adapter that allows using an ordinary function
// as a CallHandler.
type CallHandlerFunc func(ctx context.Context, ev *api.CallEvent) (*Reply, error)

// HandleCall calls f(ctx, ev).
func (f CallHandlerFunc) HandleCall(ctx context.Context, ev *api.CallEvent) (*Reply, error) {
	return f(ctx, ev)
}

// ListOptions controls pagination and ordering for list operations.
type ListOptions struct {
	After  string // Cursor: return turns after this ID.
	Before string // Cursor: return turns before this ID.
	Limit  int    // Maximum number of turns to return (default 20, max 100).
	Order  string // Sort order: "asc" or "desc" (default "asc").
}

// EffectiveLimit clamps Limit to the supported range.
func (o ListOptions) EffectiveLimit() int {
	switch {
	case o.Limit <= 0:
		return 20
	case o.Limit > 100:
		return 100
	default:
		return o.Limit
	}
}

// TurnStore persists the turn journal: one record per handled call event.
type TurnStore interface {
	// SaveTurn persists a turn. Returns storage.ErrConflict if the ID exists.
	SaveTurn(ctx context.Context, turn *api.Turn) error

	// GetTurn retrieves a turn by ID. Returns storage.ErrNotFound if absent.
	GetTurn(ctx context.Context, id string) (*api.Turn, error)

	// ListTurns returns a paginated list of the turns of one call, in
	// conversation order unless opts.Order is "desc".
	ListTurns(ctx context.Context, callID string, opts ListOptions) (*api.TurnList, error)

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases database connections and resources.
	Close() error
}
