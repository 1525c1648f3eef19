package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alerts-backend/internal/models"
)

// Memory is the reference Store implementation. It backs tests and the
// default development setup.
type Memory struct {
	mu              sync.RWMutex
	alerts          map[string]models.Alert
	notificationLog []models.NotificationLogEntry
	systemLog       []models.SystemLogEntry
	now             func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		alerts: make(map[string]models.Alert),
		now:    time.Now,
	}
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() {}

func (m *Memory) CreateAlert(ctx context.Context, alert models.Alert) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alert.ID = uuid.NewString()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = m.now()
	}
	if alert.UpdatedAt.IsZero() {
		alert.UpdatedAt = alert.CreatedAt
	}
	if alert.Status == "" {
		alert.Status = models.StatusOpen
	}
	m.alerts[alert.ID] = alert
	return alert.ID, nil
}

func (m *Memory) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) FindOneAlert(ctx context.Context, f Filter) (models.Alert, error) {
	matches, err := m.FindAlerts(ctx, f, 1)
	if err != nil {
		return models.Alert{}, err
	}
	if len(matches) == 0 {
		return models.Alert{}, ErrNotFound
	}
	return matches[0], nil
}

func (m *Memory) FindAlerts(ctx context.Context, f Filter, limit int) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []models.Alert
	for _, a := range m.alerts {
		if f.matches(a) {
			matches = append(matches, a)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *Memory) UpdateAlert(ctx context.Context, id string, u Update) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alerts[id]
	if !ok {
		return false, nil
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.AssignedTo != nil {
		a.AssignedTo = *u.AssignedTo
	}
	if u.ResolvedBy != nil {
		a.ResolvedBy = *u.ResolvedBy
	}
	if u.ResolvedAt != nil {
		a.ResolvedAt = u.ResolvedAt
	}
	a.UpdatedAt = m.now()
	m.alerts[id] = a
	return true, nil
}

func (m *Memory) DeleteAlert(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.alerts[id]; !ok {
		return false, nil
	}
	delete(m.alerts, id)
	return true, nil
}

func (m *Memory) CountAlerts(ctx context.Context, f Filter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, a := range m.alerts {
		if f.matches(a) {
			count++
		}
	}
	return count, nil
}

func (m *Memory) RecentResolved(ctx context.Context, limit int) ([]models.Alert, error) {
	return m.FindAlerts(ctx, Filter{Statuses: []models.Status{models.StatusResolved}}, limit)
}

func (m *Memory) AppendNotificationLog(ctx context.Context, entry models.NotificationLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	if entry.AttemptedAt.IsZero() {
		entry.AttemptedAt = m.now()
	}
	m.notificationLog = append(m.notificationLog, entry)
	return nil
}

func (m *Memory) NotificationLog(ctx context.Context, alertID string, limit int) ([]models.NotificationLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []models.NotificationLogEntry
	for i := len(m.notificationLog) - 1; i >= 0; i-- {
		e := m.notificationLog[i]
		if alertID != "" && e.AlertID != alertID {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (m *Memory) AppendSystemLog(ctx context.Context, entry models.SystemLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	m.systemLog = append(m.systemLog, entry)
	return nil
}

func (m *Memory) SystemLogs(ctx context.Context, f SystemLogFilter, limit int) ([]models.SystemLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []models.SystemLogEntry
	for i := len(m.systemLog) - 1; i >= 0; i-- {
		e := m.systemLog[i]
		if f.Level != "" && e.Level != f.Level {
			continue
		}
		if f.Origin != "" && e.Origin != f.Origin {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}
