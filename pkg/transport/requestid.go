package transport

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// RequestID returns middleware that assigns a unique request ID to each
// call event. An ID already in the context (set by the HTTP adapter from
// the X-Request-ID header) is kept.
func RequestID() Middleware {
	return func(next CallHandler) CallHandler {
		return CallHandlerFunc(func(ctx context.Context, ev *api.CallEvent) (*Reply, error) {
			if RequestIDFromContext(ctx) == "" {
				ctx = ContextWithRequestID(ctx, generateRequestID())
			}
			return next.HandleCall(ctx, ev)
		})
	}
}

func generateRequestID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
