package teneo

import (
	"net/http"
	"time"
)

// Config holds configuration for the Teneo provider adapter.
type Config struct {
	// URL is the engine endpoint (e.g., "https://example.teneo.ai/my-bot/").
	URL string

	// Timeout bounds each engine call. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the client used for engine calls (optional).
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(url string) Config {
	return Config{
		URL:     url,
		Timeout: 30 * time.Second,
	}
}
