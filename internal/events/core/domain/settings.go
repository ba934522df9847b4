package domain

import "errors"

var (
	ErrMissingWriteKey     = errors.New("settings.writeKey is required")
	ErrChannelNotSupported = errors.New("channel not supported")
)

// DefaultChannels are the message origins the destination accepts.
var DefaultChannels = []string{"server", "mobile", "client"}

type Settings struct {
	WriteKey string
	Channels []string
}

func (s Settings) Validate() error {
	if s.WriteKey == "" {
		return ErrMissingWriteKey
	}
	return nil
}

// AcceptsChannel reports whether events from channel may be delivered.
// An empty channel is always accepted.
func (s Settings) AcceptsChannel(channel string) bool {
	if channel == "" {
		return true
	}
	channels := s.Channels
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	for _, c := range channels {
		if c == channel {
			return true
		}
	}
	return false
}
