package teneo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// maxErrorBody bounds how much of an error reply is kept in the message.
const maxErrorBody = 512

// MapHTTPError converts a non-2xx engine reply into an EngineError.
func MapHTTPError(resp *http.Response) *api.EngineError {
	message := extractErrorMessage(resp.Body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &api.EngineError{
		Type:       api.EngineBadStatus,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// MapNetworkError converts a transport failure into an EngineError.
// Context cancellation and deadline errors are reported as unreachable
// with a message naming the cause.
func MapNetworkError(err error) *api.EngineError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return api.NewEngineError(api.EngineUnreachable, "engine call timed out", err)
	case errors.Is(err, context.Canceled):
		return api.NewEngineError(api.EngineUnreachable, "engine call canceled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return api.NewEngineError(api.EngineUnreachable, "engine call timed out", err)
	}
	return api.NewEngineError(api.EngineUnreachable, fmt.Sprintf("engine request failed: %s", err.Error()), err)
}

func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
