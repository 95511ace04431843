package engine

import "github.com/dialbridge/dialbridge/pkg/api"

// Config holds configuration for the turn pipeline.
type Config struct {
	// Channel is the channel tag sent to the dialogue engine.
	// Empty means api.ChannelTwilio.
	Channel string
}

func (c Config) channel() string {
	if c.Channel == "" {
		return api.ChannelTwilio
	}
	return c.Channel
}
