// Package dispatch fans one alert out across notification channels and
// records every delivery attempt in the notification log.
package dispatch

import (
	"context"
	"sync"
	"time"

	"alerts-backend/internal/logging"
	"alerts-backend/internal/metrics"
	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

// Channel names understood by the dispatcher.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
)

const reasonNotConfigured = "channel not configured"

// Dispatcher sends one alert to one or more channels. Channels run in
// parallel and fail independently; exactly one notification-log entry is
// written per (alert, channel) attempt regardless of outcome.
type Dispatcher struct {
	store    store.Store
	resolver RecipientResolver
	senders  map[string]ChannelSender
	timeout  time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

// New wires a dispatcher. Unlisted channels are treated as unconfigured
// at dispatch time, not as construction errors.
func New(st store.Store, resolver RecipientResolver, senders []ChannelSender, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	byName := make(map[string]ChannelSender, len(senders))
	for _, s := range senders {
		byName[s.Name()] = s
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		store:    st,
		resolver: resolver,
		senders:  byName,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// Dispatch attempts delivery on every requested channel and returns the
// outcome per channel. It blocks until all channel attempts finished (or
// timed out) so the notification log is complete when it returns.
func (d *Dispatcher) Dispatch(ctx context.Context, alert models.Alert, channels []string) map[string]models.DeliveryStatus {
	results := make(map[string]models.DeliveryStatus, len(channels))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, channel := range channels {
		wg.Add(1)
		go func(channel string) {
			defer wg.Done()
			status := d.dispatchOne(ctx, alert, channel)
			mu.Lock()
			results[channel] = status
			mu.Unlock()
		}(channel)
	}
	wg.Wait()

	return results
}

// dispatchOne runs a single channel attempt and records its log entry.
func (d *Dispatcher) dispatchOne(ctx context.Context, alert models.Alert, channel string) models.DeliveryStatus {
	sender, ok := d.senders[channel]
	if !ok || !sender.Enabled() {
		d.logger.Warnf("Channel %s not configured, skipping transport for alert %s", channel, alert.ID)
		d.record(ctx, alert.ID, channel, "", models.DeliveryFailed, reasonNotConfigured)
		return models.DeliveryFailed
	}

	recipient, err := d.resolver.Resolve(ctx, alert.ClientID, channel)
	if err != nil {
		d.logger.Errorf("Recipient lookup failed for client %s on %s: %v", alert.ClientID, channel, err)
		d.record(ctx, alert.ID, channel, "", models.DeliveryFailed, err.Error())
		return models.DeliveryFailed
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := sender.Send(sendCtx, recipient, alert); err != nil {
		d.logger.Errorf("Dispatch via %s failed for alert %s: %v", channel, alert.ID, err)
		d.record(ctx, alert.ID, channel, recipient, models.DeliveryFailed, err.Error())
		return models.DeliveryFailed
	}

	d.logger.Infof("Dispatched alert %s via %s to %s", alert.ID, channel, recipient)
	d.record(ctx, alert.ID, channel, recipient, models.DeliverySent, "")
	return models.DeliverySent
}

func (d *Dispatcher) record(ctx context.Context, alertID, channel, recipient string, status models.DeliveryStatus, reason string) {
	if status == models.DeliverySent {
		metrics.NotificationsSent.WithLabelValues(channel).Inc()
	} else {
		metrics.NotificationsFailed.WithLabelValues(channel).Inc()
	}

	entry := models.NotificationLogEntry{
		AlertID:     alertID,
		Channel:     channel,
		Recipient:   recipient,
		Status:      status,
		Reason:      reason,
		AttemptedAt: d.now(),
	}
	if err := d.store.AppendNotificationLog(ctx, entry); err != nil {
		// Delivery already happened; losing the log entry is reported
		// but cannot fail the dispatch.
		d.logger.Errorf("Failed to append notification log for alert %s channel %s: %v", alertID, channel, err)
	}
}
