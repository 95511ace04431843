package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/storage"
	"github.com/dialbridge/dialbridge/pkg/transport"
)

const contentTypeXML = "text/xml"

// Adapter serves the voice webhook over HTTP. It decodes call events,
// dispatches them to the CallHandler and writes the returned markup.
type Adapter struct {
	handler transport.CallHandler
	store   transport.TurnStore // nil when the journal is disabled
	mux     *http.ServeMux
	config  Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64

	// Fallback produces the markup written when the handler fails. When nil
	// or when it fails itself, the adapter answers 500.
	Fallback func() (string, error)
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MiB
	}
}

// NewAdapter creates an HTTP adapter for the given CallHandler. The
// TurnStore is optional; when nil, the journal endpoints answer 501.
// Middleware is applied to the handler in the given order.
func NewAdapter(handler transport.CallHandler, store transport.TurnStore, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		handler = transport.Chain(middlewares...)(handler)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}

	a := &Adapter{
		handler: handler,
		store:   store,
		mux:     http.NewServeMux(),
		config:  cfg,
	}

	// Other methods on / get 405 from the mux.
	a.mux.HandleFunc("POST /{$}", a.handleCallEvent)
	a.mux.HandleFunc("GET /calls/{call_id}/turns", a.handleListTurns)
	a.mux.HandleFunc("GET /turns/{id}", a.handleGetTurn)

	return a
}

// Handler returns the http.Handler for this adapter, including HTTP-level
// middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// httpRequestIDMiddleware moves an incoming X-Request-ID header into the
// context, or generates one, and echoes it on the response.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			r = r.WithContext(transport.ContextWithRequestID(r.Context(), id))
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter injects the X-Request-ID header before the
// first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleCallEvent handles POST /.
func (a *Adapter) handleCallEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize),
				http.StatusRequestEntityTooLarge)
			return
		}
		// A truncated body is still parsed; the parser is lenient.
		slog.Warn("reading call event body", "error", err)
	}

	ev := ParseCallEvent(body)

	reply, err := a.handler.HandleCall(r.Context(), ev)
	if err != nil {
		a.writeFallback(w, ev, err)
		return
	}

	writeMarkup(w, reply.Markup)
}

// writeFallback answers a failed call event with the fallback prompt so
// the caller stays on the line.
func (a *Adapter) writeFallback(w http.ResponseWriter, ev *api.CallEvent, cause error) {
	if a.config.Fallback == nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	markup, err := a.config.Fallback()
	if err != nil {
		slog.Error("rendering fallback markup", "call_id", ev.CallID, "cause", cause, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeMarkup(w, markup)
}

func writeMarkup(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, markup)
}

// handleGetTurn handles GET /turns/{id}.
func (a *Adapter) handleGetTurn(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("", "turn retrieval is not available (journal disabled)"),
			http.StatusNotImplemented,
		)
		return
	}

	id := r.PathValue("id")
	if !api.ValidateTurnID(id) {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("id", "malformed turn ID"),
			http.StatusBadRequest,
		)
		return
	}

	turn, err := a.store.GetTurn(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "turn "+id+" not found")
		return
	}

	writeJSON(w, turn)
}

// handleListTurns handles GET /calls/{call_id}/turns.
func (a *Adapter) handleListTurns(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("", "turn listing is not available (journal disabled)"),
			http.StatusNotImplemented,
		)
		return
	}

	opts, apiErr := parseListOptions(r)
	if apiErr != nil {
		transport.WriteErrorResponse(w, apiErr, http.StatusBadRequest)
		return
	}

	list, err := a.store.ListTurns(r.Context(), r.PathValue("call_id"), opts)
	if err != nil {
		writeStoreError(w, err, "call not found")
		return
	}

	writeJSON(w, list)
}

func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, storage.ErrNotFound) {
		transport.WriteAPIError(w, api.NewNotFoundError(notFoundMsg))
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		transport.WriteAPIError(w, apiErr)
		return
	}
	transport.WriteAPIError(w, api.NewServerError(err.Error()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// parseListOptions extracts pagination parameters from the query string.
func parseListOptions(r *http.Request) (transport.ListOptions, *api.APIError) {
	q := r.URL.Query()
	opts := transport.ListOptions{
		After:  q.Get("after"),
		Before: q.Get("before"),
		Order:  q.Get("order"),
	}

	if opts.After != "" && opts.Before != "" {
		return opts, api.NewInvalidRequestError("after", "cannot use both 'after' and 'before' cursors")
	}

	if opts.Order != "" && opts.Order != "asc" && opts.Order != "desc" {
		return opts, api.NewInvalidRequestError("order", "order must be 'asc' or 'desc'")
	}
	if opts.Order == "" {
		opts.Order = "asc"
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return opts, api.NewInvalidRequestError("limit", "limit must be a positive integer")
		}
		opts.Limit = limit
	}

	return opts, nil
}
