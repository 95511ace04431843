package http

import (
	"context"
	"io"
	"net"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/transport"
)

func TestServerStartsAndAcceptsRequests(t *testing.T) {
	srv := NewServer(&mockHandler{}, nil, WithAddr("127.0.0.1:0"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	addr := ln.Addr().String()

	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	resp, err := gohttp.Post("http://"+addr+"/", "application/x-www-form-urlencoded",
		strings.NewReader("CallSid=CA1&CallStatus=in-progress"))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != gohttp.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, gohttp.StatusOK)
	}
	if string(body) != testMarkup {
		t.Errorf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func TestServerGracefulShutdown(t *testing.T) {
	slow := transport.CallHandlerFunc(func(ctx context.Context, ev *api.CallEvent) (*transport.Reply, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return &transport.Reply{Markup: testMarkup, Directive: "hangup"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	srv := NewServer(slow, nil,
		WithAddr("127.0.0.1:0"),
		WithShutdownTimeout(5*time.Second),
	)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	addr := ln.Addr().String()

	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	responseCh := make(chan int, 1)
	go func() {
		resp, err := gohttp.Post("http://"+addr+"/", "application/x-www-form-urlencoded",
			strings.NewReader("CallSid=CA1"))
		if err != nil {
			responseCh <- 0
			return
		}
		defer resp.Body.Close()
		responseCh <- resp.StatusCode
	}()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)

	if status := <-responseCh; status != gohttp.StatusOK {
		t.Errorf("slow request status = %d, want %d", status, gohttp.StatusOK)
	}
}

func TestServerExtraRoutesAndMiddleware(t *testing.T) {
	wrapped := false
	srv := NewServer(&mockHandler{}, nil,
		WithRoute("GET /healthz", gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
			io.WriteString(w, "ok\n")
		})),
		WithHTTPMiddleware(func(next gohttp.Handler) gohttp.Handler {
			return gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
				wrapped = true
				next.ServeHTTP(w, r)
			})
		}),
	)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(gohttp.MethodGet, "/healthz", nil))

	if rec.Code != gohttp.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if !wrapped {
		t.Error("HTTP middleware was not applied")
	}
}

func TestServerPanicYieldsFallback(t *testing.T) {
	panicky := transport.CallHandlerFunc(func(ctx context.Context, ev *api.CallEvent) (*transport.Reply, error) {
		panic("composer exploded")
	})
	srv := NewServer(panicky, nil, WithFallback(testFallback))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(gohttp.MethodPost, "/", strings.NewReader("CallSid=CA1"))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != gohttp.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != fallbackMarkup {
		t.Errorf("body = %q, want fallback markup", rec.Body.String())
	}
}

func TestServerFunctionalOptions(t *testing.T) {
	srv := NewServer(&mockHandler{}, nil,
		WithAddr(":9999"),
		WithMaxBodySize(1024),
		WithTimeouts(5*time.Second, 7*time.Second),
		WithShutdownTimeout(10*time.Second),
	)

	if srv.config.Addr != ":9999" {
		t.Errorf("addr = %q, want %q", srv.config.Addr, ":9999")
	}
	if srv.config.MaxBodySize != 1024 {
		t.Errorf("max body size = %d, want %d", srv.config.MaxBodySize, 1024)
	}
	if srv.httpServer.ReadTimeout != 5*time.Second || srv.httpServer.WriteTimeout != 7*time.Second {
		t.Errorf("timeouts = %v/%v", srv.httpServer.ReadTimeout, srv.httpServer.WriteTimeout)
	}
	if srv.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want %v", srv.config.ShutdownTimeout, 10*time.Second)
	}
}
