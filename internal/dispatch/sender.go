package dispatch

import (
	"context"
	"fmt"
	"strings"

	"alerts-backend/internal/models"
)

// ChannelSender delivers one alert to one recipient over one transport.
// Implementations return an error for any failure; the dispatcher maps
// it to a failed notification-log entry and never lets it propagate.
type ChannelSender interface {
	Name() string
	// Enabled reports whether the channel has the credentials it needs.
	// Disabled channels are recorded as failed without a transport call.
	Enabled() bool
	Send(ctx context.Context, recipient string, alert models.Alert) error
}

// RecipientResolver maps a client to a delivery address for a channel.
// In production this would consult a client directory.
type RecipientResolver interface {
	Resolve(ctx context.Context, clientID, channel string) (string, error)
}

// StaticResolver derives recipients deterministically from the client id
// (email) or falls back to configured defaults (phone, chat). Stands in
// until a real client directory exists.
type StaticResolver struct {
	DefaultPhone  string
	DefaultChatID string
}

func (r StaticResolver) Resolve(ctx context.Context, clientID, channel string) (string, error) {
	switch channel {
	case ChannelEmail:
		return fmt.Sprintf("suporte@%s.com", strings.ToLower(clientID)), nil
	case ChannelWhatsApp:
		if r.DefaultPhone == "" {
			return "", fmt.Errorf("no phone number configured for client %s", clientID)
		}
		return r.DefaultPhone, nil
	case ChannelTelegram:
		if r.DefaultChatID == "" {
			return "", fmt.Errorf("no chat id configured for client %s", clientID)
		}
		return r.DefaultChatID, nil
	}
	return "", fmt.Errorf("unknown channel %q", channel)
}
