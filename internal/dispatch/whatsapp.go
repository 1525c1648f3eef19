package dispatch

import (
	"context"

	"alerts-backend/internal/config"
	"alerts-backend/internal/models"
	"alerts-backend/pkg/whatsapp"
)

// WhatsAppSender delivers alerts through the WhatsApp HTTP gateway.
type WhatsAppSender struct {
	client  *whatsapp.Client
	enabled bool
}

func NewWhatsAppSender(cfg config.Config) *WhatsAppSender {
	w := cfg.WhatsApp
	return &WhatsAppSender{
		client:  whatsapp.New(w.APIURL, w.APIToken),
		enabled: w.APIURL != "" && w.APIToken != "",
	}
}

func (s *WhatsAppSender) Name() string { return ChannelWhatsApp }

func (s *WhatsAppSender) Enabled() bool { return s.enabled }

func (s *WhatsAppSender) Send(ctx context.Context, recipient string, alert models.Alert) error {
	return s.client.Send(ctx, recipient, ChatMessage(alert))
}
