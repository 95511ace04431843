package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.URL == "" {
		errs = append(errs, fmt.Errorf("engine.url is required"))
	} else if u, err := url.Parse(c.Engine.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("engine.url must be an absolute URL, got %q", c.Engine.URL))
	}

	if c.Engine.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("engine.timeout must be > 0, got %v", c.Engine.Timeout))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	if c.Voice.TTSVoice == "" {
		errs = append(errs, fmt.Errorf("voice.tts_voice must not be empty"))
	}
	if c.Voice.STTLanguage == "" {
		errs = append(errs, fmt.Errorf("voice.stt_language must not be empty"))
	}

	switch c.Journal.Type {
	case "memory", "postgres", "none":
	default:
		errs = append(errs, fmt.Errorf("journal.type must be \"memory\", \"postgres\" or \"none\", got %q", c.Journal.Type))
	}

	if c.Journal.Type == "postgres" {
		if c.Journal.Postgres.DSN == "" && c.Journal.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("journal.postgres.dsn or journal.postgres.dsn_file is required when journal.type is \"postgres\""))
		}
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}
