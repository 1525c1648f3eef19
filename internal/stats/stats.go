// Package stats computes the aggregate alert view for reporting.
package stats

import (
	"context"
	"fmt"
	"time"

	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

// Aggregator reads the store and derives counts and the mean resolution
// time. Read-only, no side effects.
type Aggregator struct {
	store      store.Store
	sampleSize int
	now        func() time.Time
}

// New builds an aggregator. sampleSize bounds the resolution-time mean
// to the most recent N resolved alerts.
func New(st store.Store, sampleSize int) *Aggregator {
	if sampleSize <= 0 {
		sampleSize = 100
	}
	return &Aggregator{
		store:      st,
		sampleSize: sampleSize,
		now:        time.Now,
	}
}

// Compute returns the current stats snapshot.
func (a *Aggregator) Compute(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	var err error

	if s.OpenAlerts, err = a.store.CountAlerts(ctx, store.Filter{Statuses: []models.Status{models.StatusOpen}}); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count open alerts: %w", err)
	}
	if s.InProgress, err = a.store.CountAlerts(ctx, store.Filter{Statuses: []models.Status{models.StatusInProgress}}); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count in-progress alerts: %w", err)
	}

	now := a.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.ResolvedToday, err = a.store.CountAlerts(ctx, store.Filter{
		Statuses:      []models.Status{models.StatusResolved},
		ResolvedAfter: startOfDay,
	}); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count alerts resolved today: %w", err)
	}

	if s.Total, err = a.store.CountAlerts(ctx, store.Filter{}); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count alerts: %w", err)
	}

	resolved, err := a.store.RecentResolved(ctx, a.sampleSize)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to sample resolved alerts: %w", err)
	}
	s.AvgResponseTime = averageResolution(resolved)

	return s, nil
}

// averageResolution formats the mean of (resolvedAt - createdAt) as
// "Xmin", or "Xh Ymin" from one hour up. "N/A" when nothing resolved.
func averageResolution(alerts []models.Alert) string {
	var total time.Duration
	count := 0
	for _, a := range alerts {
		if a.ResolvedAt == nil {
			continue
		}
		total += a.ResolvedAt.Sub(a.CreatedAt)
		count++
	}
	if count == 0 {
		return "N/A"
	}

	avgMinutes := int(total.Minutes()) / count
	if avgMinutes < 60 {
		return fmt.Sprintf("%dmin", avgMinutes)
	}
	return fmt.Sprintf("%dh %dmin", avgMinutes/60, avgMinutes%60)
}
