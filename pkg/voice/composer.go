package voice

import (
	"fmt"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/debug"
)

// Composer applies language overrides, selects a directive and renders it.
type Composer struct {
	settings *Settings
	cfg      Config
}

// NewComposer creates a Composer backed by the given settings holder.
func NewComposer(settings *Settings, cfg Config) *Composer {
	return &Composer{settings: settings, cfg: cfg}
}

// Compose returns the TwiML for the engine output and the directive it encodes.
func (c *Composer) Compose(out api.EngineOutput) (string, Directive, error) {
	langs := c.settings.Apply(out.Parameters)
	d := Select(out, langs, c.cfg)
	debug.Log("voice", "directive selected", "kind", d.Kind, "voice", d.Voice, "language", langs.STT)

	markup, err := Render(d)
	if err != nil {
		return "", d, fmt.Errorf("rendering %s directive: %w", d.Kind, err)
	}
	return markup, d, nil
}

// ComposeFallback returns the TwiML used when no engine output is available.
func (c *Composer) ComposeFallback() (string, Directive, error) {
	d := Fallback(c.settings.Current(), c.cfg)
	markup, err := Render(d)
	if err != nil {
		return "", d, fmt.Errorf("rendering fallback directive: %w", err)
	}
	return markup, d, nil
}

// Settings returns the holder the composer reads languages from.
func (c *Composer) Settings() *Settings {
	return c.settings
}
