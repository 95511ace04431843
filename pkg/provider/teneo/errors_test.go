package teneo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dialbridge/dialbridge/pkg/api"
)

func TestMapHTTPError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader("  upstream down \n")),
	}
	e := MapHTTPError(resp)
	if e.Type != api.EngineBadStatus || e.StatusCode != 502 {
		t.Errorf("MapHTTPError = %+v", e)
	}
	if e.Message != "upstream down" {
		t.Errorf("Message = %q", e.Message)
	}

	resp = &http.Response{StatusCode: http.StatusServiceUnavailable, Body: io.NopCloser(strings.NewReader(""))}
	if e := MapHTTPError(resp); e.Message != "Service Unavailable" {
		t.Errorf("empty body message = %q", e.Message)
	}
}

func TestMapNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, "engine call timed out"},
		{"canceled", context.Canceled, "engine call canceled"},
		{"other", errors.New("connection refused"), "engine request failed: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := MapNetworkError(tt.err)
			if e.Type != api.EngineUnreachable {
				t.Errorf("Type = %q", e.Type)
			}
			if e.Message != tt.want {
				t.Errorf("Message = %q, want %q", e.Message, tt.want)
			}
			if !errors.Is(e, tt.err) {
				t.Error("cause not wrapped")
			}
		})
	}
}
