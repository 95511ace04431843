package teneo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/debug"
	"github.com/dialbridge/dialbridge/pkg/provider"
	"github.com/dialbridge/dialbridge/pkg/session"
)

// maxReplySize bounds the engine reply body.
const maxReplySize = 1 << 20

// Provider talks to a Teneo engine over HTTP.
type Provider struct {
	httpClient *http.Client
	url        string
}

// Ensure Provider implements provider.Provider at compile time.
var _ provider.Provider = (*Provider)(nil)

// New creates a Teneo provider.
func New(cfg Config) (*Provider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("teneo: engine URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("teneo: invalid engine URL %q: %w", cfg.URL, err)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Provider{
		httpClient: client,
		url:        cfg.URL,
	}, nil
}

// Name returns "teneo".
func (p *Provider) Name() string { return "teneo" }

// SendInput posts one input to the engine and decodes the reply.
func (p *Provider) SendInput(ctx context.Context, sessionID string, req *api.EngineRequest) (*api.EngineResponse, error) {
	form := encodeForm(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, api.NewEngineError(api.EngineUnreachable, "failed to create HTTP request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if sessionID != session.NoSession {
		httpReq.AddCookie(&http.Cookie{Name: sessionCookie, Value: sessionID})
	}

	debug.Log("provider", "engine request", "url", p.url, "session_id", sessionID, "call_id", req.CallID)
	debug.Trace("provider", "engine request body", "form", form.Encode())

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxReplySize))
	if err != nil {
		return nil, MapNetworkError(err)
	}
	debug.Trace("provider", "engine reply body", "status", httpResp.StatusCode, "body", string(body))

	return decodeReply(body, sessionCookieValue(httpResp))
}

// Close releases idle connections.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

func encodeForm(req *api.EngineRequest) url.Values {
	form := url.Values{}
	form.Set(fieldUserInput, req.Text)
	form.Set(fieldViewType, viewTypeTIE)
	form.Set(fieldChannel, req.Channel)
	form.Set(fieldDigits, req.Digits)
	form.Set(fieldConfidence, req.Confidence)
	form.Set(fieldCallerCountry, req.CallerCountry)
	form.Set(fieldCallID, req.CallID)
	form.Set(fieldPhoneNumber, req.CallerNumber)
	return form
}

// decodeReply validates and converts a raw reply. cookieSession is used
// when the body omits sessionId.
func decodeReply(body []byte, cookieSession string) (*api.EngineResponse, error) {
	if err := validateReply(body); err != nil {
		return nil, api.NewEngineError(api.EngineMalformed, err.Error(), err)
	}

	var tie tieResponse
	if err := json.Unmarshal(body, &tie); err != nil {
		return nil, api.NewEngineError(api.EngineMalformed, fmt.Sprintf("failed to parse engine reply: %s", err.Error()), err)
	}

	if tie.Status != 0 {
		msg := tie.Message
		if msg == "" {
			msg = fmt.Sprintf("engine returned status %d", tie.Status)
		}
		return nil, api.NewEngineError(api.EngineRejected, msg, nil)
	}

	sessionID := tie.SessionID
	if sessionID == "" {
		sessionID = cookieSession
	}
	if sessionID == "" {
		return nil, api.NewEngineError(api.EngineMalformed, "reply carries no session id", nil)
	}

	params := tie.Output.Parameters
	if params == nil {
		params = map[string]string{}
	}

	return &api.EngineResponse{
		SessionID: sessionID,
		Output: api.EngineOutput{
			Text:       tie.Output.Text,
			Parameters: params,
		},
	}, nil
}

func sessionCookieValue(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	return ""
}
