package voice

import (
	"log/slog"
	"sync"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Languages is the recognition language and synthesis voice used to build
// one response.
type Languages struct {
	// STT is the speech recognition language tag (e.g. "en-US").
	STT string
	// TTS is the synthesis voice identifier (e.g. "Polly.Joanna").
	TTS string
}

// Settings holds the last known Languages. Engine output may override
// either value; the override sticks for every later response.
//
// All methods are safe for concurrent access.
type Settings struct {
	mu      sync.Mutex
	current Languages
}

// NewSettings creates a holder seeded with the configured defaults.
func NewSettings(defaults Languages) *Settings {
	return &Settings{current: defaults}
}

// Current returns a snapshot of the held languages.
func (s *Settings) Current() Languages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply records any sttLanguage/ttsLanguage override found in params and
// returns the resulting snapshot. Reading and updating happen under one
// lock so a response never sees a half-applied override.
func (s *Settings) Apply(params map[string]string) Languages {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v := params[api.ParamSTTLanguage]; v != "" && v != s.current.STT {
		slog.Info("recognition language changed", "from", s.current.STT, "to", v)
		s.current.STT = v
	}
	if v := params[api.ParamTTSLanguage]; v != "" && v != s.current.TTS {
		slog.Info("synthesis voice changed", "from", s.current.TTS, "to", v)
		s.current.TTS = v
	}
	return s.current
}
