// Command server runs the dialbridge voice webhook.
//
// Configuration is read from a YAML file and environment overrides. The
// file is found via the -config flag, DIALBRIDGE_CONFIG, ./config.yaml or
// /etc/dialbridge/config.yaml. The most common overrides:
//
//	DIALBRIDGE_ENGINE_URL (TENEO_ENGINE_URL)  - Dialogue engine URL (required)
//	DIALBRIDGE_PORT (PORT)                    - Listen port (default: 1337)
//	DIALBRIDGE_LANGUAGE_STT (LANGUAGE_STT)    - Recognition language (default: en-US)
//	DIALBRIDGE_LANGUAGE_TTS (LANGUAGE_TTS)    - Synthesis voice (default: Polly.Joanna)
//	DIALBRIDGE_JOURNAL                        - Turn journal: "memory", "postgres" or "none"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dialbridge/dialbridge/pkg/config"
	"github.com/dialbridge/dialbridge/pkg/debug"
	"github.com/dialbridge/dialbridge/pkg/engine"
	"github.com/dialbridge/dialbridge/pkg/observability"
	"github.com/dialbridge/dialbridge/pkg/provider/teneo"
	sessionmem "github.com/dialbridge/dialbridge/pkg/session/memory"
	"github.com/dialbridge/dialbridge/pkg/storage/memory"
	"github.com/dialbridge/dialbridge/pkg/storage/postgres"
	"github.com/dialbridge/dialbridge/pkg/transport"
	transporthttp "github.com/dialbridge/dialbridge/pkg/transport/http"
	"github.com/dialbridge/dialbridge/pkg/voice"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level, cfg.Logging.Format)

	prov, err := teneo.New(teneo.Config{
		URL:     cfg.Engine.URL,
		Timeout: cfg.Engine.Timeout,
	})
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	defer prov.Close()

	settings := voice.NewSettings(voice.Languages{
		STT: cfg.Voice.STTLanguage,
		TTS: cfg.Voice.TTSVoice,
	})
	composer := voice.NewComposer(settings, voice.Config{
		WorkflowWebhookURL: cfg.Voice.WorkflowWebhookURL,
		HangupAudioURL:     cfg.Voice.HangupAudioURL,
		FallbackText:       cfg.Voice.FallbackText,
	})

	journal, err := newJournal(context.Background(), cfg.Journal)
	if err != nil {
		return err
	}
	if journal != nil {
		defer journal.Close()
	}

	eng, err := engine.New(prov, sessionmem.New(), composer, journal, engine.Config{
		Channel: cfg.Engine.Channel,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(":" + strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithFallback(func() (string, error) {
			markup, _, err := composer.ComposeFallback()
			return markup, err
		}),
		transporthttp.WithRoute("GET /healthz", healthHandler(journal)),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts,
			transporthttp.WithRoute("GET "+cfg.Observability.Metrics.Path, promhttp.Handler()),
			transporthttp.WithHTTPMiddleware(observability.MetricsMiddleware),
		)
	}

	srv := transporthttp.NewServer(eng, journal, opts...)

	slog.Info("server starting",
		"port", cfg.Server.Port,
		"engine", cfg.Engine.URL,
		"journal", cfg.Journal.Type,
		"stt_language", cfg.Voice.STTLanguage,
		"tts_voice", cfg.Voice.TTSVoice,
	)
	return srv.ListenAndServe()
}

// newJournal returns nil when the journal is disabled.
func newJournal(ctx context.Context, cfg config.JournalConfig) (transport.TurnStore, error) {
	switch cfg.Type {
	case "memory", "":
		slog.Info("journal enabled", "type", "memory", "max_size", cfg.MaxSize)
		return memory.New(cfg.MaxSize), nil
	case "postgres":
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Postgres.DSN,
			MaxConns:       cfg.Postgres.MaxConns,
			MigrateOnStart: cfg.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("creating postgres journal: %w", err)
		}
		slog.Info("journal enabled", "type", "postgres")
		return store, nil
	default:
		slog.Info("journal disabled")
		return nil, nil
	}
}

func healthHandler(journal transport.TurnStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if journal != nil {
			if err := journal.HealthCheck(r.Context()); err != nil {
				http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
}
