// Command mock-engine runs a deterministic dialogue engine that speaks the
// TIE form/JSON protocol, for local runs of the webhook without a real
// engine. Replies are picked from keywords in the user input:
//
//	"bye"      ends the call
//	"agent"    transfers to the "support" queue
//	"pin"      asks for keypad digits
//	"deutsch"  switches recognition and synthesis to German
//	"error"    answers with a non-zero status
//
// Anything else is echoed back.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
)

const sessionCookie = "JSESSIONID"

var sessionSeq atomic.Int64

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /", handleInput)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock engine starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock engine failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock engine shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

type reply struct {
	Status    int         `json:"status"`
	Message   string      `json:"message,omitempty"`
	SessionID string      `json:"sessionId"`
	Input     replyInput  `json:"input"`
	Output    replyOutput `json:"output"`
}

type replyInput struct {
	Text       string            `json:"text"`
	Parameters map[string]string `json:"parameters"`
}

type replyOutput struct {
	Text       string            `json:"text"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

func handleInput(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	sessionID := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		sessionID = c.Value
	}
	if sessionID == "" {
		sessionID = fmt.Sprintf("mock-%d", sessionSeq.Add(1))
	}

	text := r.PostForm.Get("userinput")
	digits := r.PostForm.Get("digits")

	out := respond(text, digits)
	out.SessionID = sessionID
	out.Input = replyInput{
		Text: text,
		Parameters: map[string]string{
			"channel":         r.PostForm.Get("channel"),
			"twilioSessionId": r.PostForm.Get("twilioSessionId"),
		},
	}

	slog.Info("mock engine turn", "session", sessionID, "input", text, "digits", digits, "status", out.Status)

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sessionID, Path: "/"})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func respond(text, digits string) reply {
	lower := strings.ToLower(text)
	params := map[string]string{}

	switch {
	case digits != "":
		return reply{Output: replyOutput{Text: "You entered " + digits + ". How else can I help?", Parameters: params}}
	case strings.Contains(lower, "error"):
		return reply{Status: 1, Message: "simulated engine error"}
	case strings.Contains(lower, "bye"):
		params["twilio_endCall"] = "true"
		return reply{Output: replyOutput{Text: "Goodbye, thanks for calling.", Parameters: params}}
	case strings.Contains(lower, "agent"):
		params["twilio_Queue"] = "support"
		return reply{Output: replyOutput{Text: "Let me connect you to an agent.", Parameters: params}}
	case strings.Contains(lower, "pin"):
		params["twilio_getDigits"] = "true"
		return reply{Output: replyOutput{Text: "Please type your PIN followed by the hash key.", Parameters: params}}
	case strings.Contains(lower, "deutsch"):
		params["twilio_sttLanguage"] = "de-DE"
		params["twilio_ttsLanguage"] = "Polly.Vicki"
		return reply{Output: replyOutput{Text: "Alles klar, wir sprechen Deutsch.", Parameters: params}}
	case text == "":
		params["twilio_customVocabulary"] = "agent,pin,goodbye"
		return reply{Output: replyOutput{Text: "Hello, how can I help you?", Parameters: params}}
	default:
		return reply{Output: replyOutput{Text: "You said: " + text, Parameters: params}}
	}
}
