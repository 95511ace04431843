package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/debug"
	"github.com/dialbridge/dialbridge/pkg/observability"
)

// invoke forwards the call event to the dialogue engine and records the
// returned session id for the call. The registry is only written on success.
func (e *Engine) invoke(ctx context.Context, ev *api.CallEvent, sessionID string) (*api.EngineResponse, error) {
	req := api.NewEngineRequest(ev, e.cfg.channel())
	provName := e.provider.Name()

	debug.Log("engine", "invoking engine",
		"call_id", ev.CallID, "session_id", sessionID,
		"text", debug.Truncate(req.Text, 80), "digits", req.Digits)

	start := time.Now()
	resp, err := e.provider.SendInput(ctx, sessionID, req)
	observability.EngineLatency.WithLabelValues(provName).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.EngineRequestsTotal.WithLabelValues(provName, "error").Inc()
		return nil, err
	}
	observability.EngineRequestsTotal.WithLabelValues(provName, "success").Inc()

	if err := e.sessions.Set(ctx, ev.CallID, resp.SessionID); err != nil {
		// The reply is still valid for this turn; the next turn starts a
		// new engine session.
		slog.Warn("recording engine session failed",
			"call_id", ev.CallID, "session_id", resp.SessionID, "error", err)
	}
	e.reportSessions()

	debug.Log("engine", "engine replied",
		"call_id", ev.CallID, "session_id", resp.SessionID,
		"text", debug.Truncate(resp.Output.Text, 80), "params", len(resp.Output.Parameters))
	return resp, nil
}
