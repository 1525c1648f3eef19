package models

import "time"

// DeliveryStatus is the outcome of one channel send attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// NotificationLogEntry records one delivery attempt for one alert over
// one channel. Entries are append-only and never mutated.
type NotificationLogEntry struct {
	ID          string         `json:"id"`
	AlertID     string         `json:"alert_id"`
	Channel     string         `json:"channel"`
	Recipient   string         `json:"recipient"`
	Status      DeliveryStatus `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	AttemptedAt time.Time      `json:"attempted_at"`
}

// SystemLogEntry is an audit record written by the engine and the API
// (cycle summaries, resolutions).
type SystemLogEntry struct {
	ID        string                 `json:"id"`
	Origin    string                 `json:"origin"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
