// Package store defines the persistence boundary the alert engine
// depends on, with an in-memory reference implementation and a
// PostgreSQL implementation.
package store

import (
	"context"
	"errors"
	"time"

	"alerts-backend/internal/models"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Filter narrows alert queries. Zero-valued fields are ignored.
type Filter struct {
	ClientID      string
	AlertType     string
	Severity      models.Severity
	Statuses      []models.Status
	CreatedAfter  time.Time
	ResolvedAfter time.Time
}

// Update carries the mutable alert fields. Nil means "leave unchanged".
// Severity, client and detector fields are immutable after creation and
// deliberately absent here.
type Update struct {
	Status     *models.Status
	AssignedTo *string
	ResolvedBy *string
	ResolvedAt *time.Time
}

// SystemLogFilter narrows system log queries.
type SystemLogFilter struct {
	Level  string
	Origin string
}

// Store is the persistence interface consumed by the engine, dispatcher,
// stats aggregator and API. Implementations own the stored records; all
// other components hold copies.
type Store interface {
	// Ping verifies connectivity. A failing Ping at cycle start aborts
	// the whole check cycle.
	Ping(ctx context.Context) error

	CreateAlert(ctx context.Context, alert models.Alert) (string, error)
	GetAlert(ctx context.Context, id string) (models.Alert, error)
	// FindOneAlert returns the newest alert matching the filter, or
	// ErrNotFound.
	FindOneAlert(ctx context.Context, f Filter) (models.Alert, error)
	// FindAlerts returns matches ordered by created_at descending.
	FindAlerts(ctx context.Context, f Filter, limit int) ([]models.Alert, error)
	// UpdateAlert applies the partial update and bumps updated_at.
	// Returns false when the id does not exist.
	UpdateAlert(ctx context.Context, id string, u Update) (bool, error)
	DeleteAlert(ctx context.Context, id string) (bool, error)
	CountAlerts(ctx context.Context, f Filter) (int, error)
	// RecentResolved returns up to limit resolved alerts, newest first,
	// for the resolution-time sample.
	RecentResolved(ctx context.Context, limit int) ([]models.Alert, error)

	AppendNotificationLog(ctx context.Context, entry models.NotificationLogEntry) error
	NotificationLog(ctx context.Context, alertID string, limit int) ([]models.NotificationLogEntry, error)

	AppendSystemLog(ctx context.Context, entry models.SystemLogEntry) error
	SystemLogs(ctx context.Context, f SystemLogFilter, limit int) ([]models.SystemLogEntry, error)

	Close()
}

// matches reports whether an alert satisfies the filter. Shared by the
// memory store and tests.
func (f Filter) matches(a models.Alert) bool {
	if f.ClientID != "" && a.ClientID != f.ClientID {
		return false
	}
	if f.AlertType != "" && a.AlertType != f.AlertType {
		return false
	}
	if f.Severity != "" && a.Severity != f.Severity {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if a.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if !f.CreatedAfter.IsZero() && a.CreatedAt.Before(f.CreatedAfter) {
		return false
	}
	if !f.ResolvedAfter.IsZero() {
		if a.ResolvedAt == nil || a.ResolvedAt.Before(f.ResolvedAfter) {
			return false
		}
	}
	return true
}
