package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"alerts-backend/internal/config"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/models"
	"alerts-backend/internal/utils"
	"alerts-backend/pkg/telegram"
)

// TelegramSender delivers alerts via the Bot API. Sends are rate-limited
// globally and retried a few times since the Bot API throttles bursts.
type TelegramSender struct {
	token   string
	limiter *rate.Limiter
	logger  *logging.Logger
}

func NewTelegramSender(cfg config.Config, logger *logging.Logger) *TelegramSender {
	perSecond := cfg.Telegram.RatePerSecond
	return &TelegramSender{
		token:   cfg.Telegram.BotToken,
		limiter: rate.NewLimiter(rate.Limit(float64(perSecond)), perSecond),
		logger:  logger,
	}
}

func (s *TelegramSender) Name() string { return ChannelTelegram }

func (s *TelegramSender) Enabled() bool { return s.token != "" }

func (s *TelegramSender) Send(ctx context.Context, recipient string, alert models.Alert) error {
	chatID, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid Telegram chat id %q: %w", recipient, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	return utils.Retry(s.logger, 3, time.Second, func() error {
		return telegram.Send(ctx, s.token, chatID, ChatMessage(alert))
	})
}
