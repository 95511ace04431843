package transport

import (
	"context"
	"fmt"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to server errors. The HTTP adapter answers such errors
// with fallback markup, so the call is not dropped.
func Recovery() Middleware {
	return func(next CallHandler) CallHandler {
		return CallHandlerFunc(func(ctx context.Context, ev *api.CallEvent) (reply *Reply, retErr error) {
			defer func() {
				if r := recover(); r != nil {
					reply = nil
					retErr = api.NewServerError(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.HandleCall(ctx, ev)
		})
	}
}
