package dispatch

import (
	"context"

	"alerts-backend/internal/config"
	"alerts-backend/internal/models"
	"alerts-backend/pkg/email"
)

// EmailSender delivers alerts over SMTP.
type EmailSender struct {
	cfg          config.Config
	dashboardURL string
}

func NewEmailSender(cfg config.Config) *EmailSender {
	return &EmailSender{cfg: cfg, dashboardURL: cfg.DashboardURL}
}

func (s *EmailSender) Name() string { return ChannelEmail }

func (s *EmailSender) Enabled() bool {
	e := s.cfg.Email
	return e.SMTPServer != "" && e.SMTPPort != 0 && e.Username != "" && e.Password != ""
}

func (s *EmailSender) Send(ctx context.Context, recipient string, alert models.Alert) error {
	e := s.cfg.Email
	from := e.From
	if from == "" {
		from = e.Username
	}
	return email.Send(e.SMTPServer, e.SMTPPort, e.Username, e.Password, from,
		recipient, EmailSubject(alert), EmailBody(alert, s.dashboardURL))
}
