package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/observability"
	"github.com/dialbridge/dialbridge/pkg/provider"
	"github.com/dialbridge/dialbridge/pkg/session"
	"github.com/dialbridge/dialbridge/pkg/transport"
	"github.com/dialbridge/dialbridge/pkg/voice"
)

// Engine runs the turn pipeline between the transport layer and the
// dialogue engine. It implements transport.CallHandler.
type Engine struct {
	provider provider.Provider
	sessions session.Store
	composer *voice.Composer
	journal  transport.TurnStore // nil disables the journal
	locks    *transport.CallLocks
	cfg      Config
}

// Ensure Engine implements transport.CallHandler at compile time.
var _ transport.CallHandler = (*Engine)(nil)

// New creates a new Engine. The provider, session store and composer must
// not be nil. The journal can be nil.
func New(p provider.Provider, sessions session.Store, composer *voice.Composer, journal transport.TurnStore, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("engine: provider must not be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("engine: session store must not be nil")
	}
	if composer == nil {
		return nil, fmt.Errorf("engine: composer must not be nil")
	}
	return &Engine{
		provider: p,
		sessions: sessions,
		composer: composer,
		journal:  journal,
		locks:    transport.NewCallLocks(),
		cfg:      cfg,
	}, nil
}

// HandleCall processes one call event. The per-call lock is held from the
// session lookup until the new session id is recorded, so concurrent
// events for one call never read a stale session.
func (e *Engine) HandleCall(ctx context.Context, ev *api.CallEvent) (*transport.Reply, error) {
	unlock, err := e.locks.Lock(ctx, ev.CallID)
	if err != nil {
		return nil, fmt.Errorf("waiting for call %s: %w", ev.CallID, err)
	}
	defer unlock()

	sessionID, err := e.sessions.Get(ctx, ev.CallID)
	if err != nil {
		return e.fallback(ctx, ev, session.NoSession, fmt.Errorf("looking up session: %w", err))
	}

	resp, err := e.invoke(ctx, ev, sessionID)
	if err != nil {
		return e.fallback(ctx, ev, sessionID, err)
	}

	markup, d, err := e.composer.Compose(resp.Output)
	if err != nil {
		return nil, err
	}
	observability.DirectivesTotal.WithLabelValues(string(d.Kind)).Inc()

	e.record(ctx, &api.Turn{
		CallID:     ev.CallID,
		SessionID:  resp.SessionID,
		Input:      *ev,
		OutputText: resp.Output.Text,
		Parameters: resp.Output.Parameters,
		Directive:  string(d.Kind),
	})

	return &transport.Reply{Markup: markup, Directive: string(d.Kind)}, nil
}

// fallback answers a failed turn with the fallback prompt. The session
// registry is left as it was.
func (e *Engine) fallback(ctx context.Context, ev *api.CallEvent, sessionID string, cause error) (*transport.Reply, error) {
	failure := "internal"
	var engErr *api.EngineError
	if errors.As(cause, &engErr) {
		failure = string(engErr.Type)
	}
	observability.EngineFailuresTotal.WithLabelValues(failure).Inc()
	slog.Error("engine turn failed, answering with fallback",
		"call_id", ev.CallID, "session_id", sessionID, "type", failure, "error", cause)

	markup, d, err := e.composer.ComposeFallback()
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	observability.DirectivesTotal.WithLabelValues(string(d.Kind)).Inc()

	e.record(ctx, &api.Turn{
		CallID:     ev.CallID,
		SessionID:  sessionID,
		Input:      *ev,
		OutputText: d.Text,
		Directive:  string(d.Kind),
		Fallback:   true,
	})

	return &transport.Reply{Markup: markup, Directive: string(d.Kind), Fallback: true}, nil
}

// record writes a turn to the journal. Failures are logged and counted but
// never change the reply.
func (e *Engine) record(ctx context.Context, turn *api.Turn) {
	if e.journal == nil {
		return
	}
	turn.ID = api.NewTurnID()
	turn.CreatedAt = time.Now().Unix()
	if err := e.journal.SaveTurn(ctx, turn); err != nil {
		observability.JournalErrorsTotal.Inc()
		slog.Warn("saving turn failed", "call_id", turn.CallID, "turn_id", turn.ID, "error", err)
	}
}

// reportSessions publishes the registry size when the store can count.
func (e *Engine) reportSessions() {
	if c, ok := e.sessions.(session.Counter); ok {
		observability.SessionEntries.Set(float64(c.Len()))
	}
}
