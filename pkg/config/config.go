// Package config provides unified configuration for the dialbridge webhook.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Legacy environment variable names (TENEO_ENGINE_URL, LANGUAGE_STT, ...)
//  4. Environment variable overrides (DIALBRIDGE_ prefix)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Default values shared with the binaries.
const (
	DefaultPort           = 1337
	DefaultSTTLanguage    = "en-US"
	DefaultTTSVoice       = "Polly.Joanna"
	DefaultHangupAudioURL = "https://demos-luis.artificial-solutions.com/artisoldemo/wait.mp3"
	DefaultFallbackText   = "Sorry, I am having trouble right now. Could you say that again?"
)

// Config holds all configuration for the dialbridge webhook.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Engine        EngineConfig        `yaml:"engine"`
	Voice         VoiceConfig         `yaml:"voice"`
	Journal       JournalConfig       `yaml:"journal"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 1337
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 60s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
}

// EngineConfig holds dialogue engine settings.
type EngineConfig struct {
	URL     string        `yaml:"url"`     // required
	Timeout time.Duration `yaml:"timeout"` // default: 30s
	Channel string        `yaml:"channel"` // default: "twilio"
}

// VoiceConfig holds speech and markup settings.
type VoiceConfig struct {
	STTLanguage        string `yaml:"stt_language"`         // default: "en-US"
	TTSVoice           string `yaml:"tts_voice"`            // default: "Polly.Joanna"
	WorkflowWebhookURL string `yaml:"workflow_webhook_url"` // queue transfer target
	HangupAudioURL     string `yaml:"hangup_audio_url"`     // played before hanging up
	FallbackText       string `yaml:"fallback_text"`        // spoken when the engine fails
}

// JournalConfig holds turn journal settings.
type JournalConfig struct {
	Type     string         `yaml:"type"`     // "memory", "postgres" or "none", default: "memory"
	MaxSize  int            `yaml:"max_size"` // for memory journal, default: 10000
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 10
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: true
}

// LoggingConfig holds log output settings. DIALBRIDGE_DEBUG and
// DIALBRIDGE_LOG_LEVEL take precedence at startup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // default: "INFO"
	Debug  string `yaml:"debug"`  // comma-separated debug categories
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
		},
		Engine: EngineConfig{
			Timeout: 30 * time.Second,
			Channel: "twilio",
		},
		Voice: VoiceConfig{
			STTLanguage:    DefaultSTTLanguage,
			TTSVoice:       DefaultTTSVoice,
			HangupAudioURL: DefaultHangupAudioURL,
			FallbackText:   DefaultFallbackText,
		},
		Journal: JournalConfig{
			Type:    "memory",
			MaxSize: 10000,
			Postgres: PostgresConfig{
				MaxConns:       10,
				MigrateOnStart: true,
			},
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
