package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Logging returns middleware that emits one structured log entry per
// handled call event with the call id, call status, selected directive
// and duration. HTTP status codes are not visible at this level.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next CallHandler) CallHandler {
		return CallHandlerFunc(func(ctx context.Context, ev *api.CallEvent) (*Reply, error) {
			start := time.Now()

			reply, err := next.HandleCall(ctx, ev)

			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("call_id", ev.CallID),
				slog.String("call_status", ev.CallStatus),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "call event failed", attrs...)
				return reply, err
			}

			attrs = append(attrs,
				slog.String("directive", reply.Directive),
				slog.Bool("fallback", reply.Fallback),
			)
			logger.LogAttrs(ctx, slog.LevelInfo, "call event handled", attrs...)
			return reply, nil
		})
	}
}
