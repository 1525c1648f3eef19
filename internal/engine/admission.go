package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

// defaultWindow applies to alert types without a configured window. The
// taxonomy is open, so unknown types get the shortest standard window
// rather than being rejected.
const defaultWindow = time.Hour

// AdmissionFilter decides whether a candidate becomes a new alert or is
// suppressed as a duplicate of a still-active one inside the type's
// deduplication window.
type AdmissionFilter struct {
	store   store.Store
	windows map[string]time.Duration
	now     func() time.Time
}

func NewAdmissionFilter(st store.Store, windows map[string]time.Duration) *AdmissionFilter {
	return &AdmissionFilter{
		store:   st,
		windows: windows,
		now:     time.Now,
	}
}

// Window returns the dedup window for an alert type.
func (f *AdmissionFilter) Window(alertType string) time.Duration {
	if w, ok := f.windows[alertType]; ok {
		return w
	}
	return defaultWindow
}

// Admit reports whether the candidate should become an alert. A store
// failure during the lookup fails open: the candidate is accepted and
// the error is returned alongside so the cycle summary can surface it.
// Missing a real problem is worse than a possible duplicate.
func (f *AdmissionFilter) Admit(ctx context.Context, c models.Candidate) (bool, error) {
	cutoff := f.now().Add(-f.Window(c.AlertType))

	_, err := f.store.FindOneAlert(ctx, store.Filter{
		ClientID:     c.ClientID,
		AlertType:    c.AlertType,
		Statuses:     []models.Status{models.StatusOpen, models.StatusInProgress},
		CreatedAfter: cutoff,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return true, fmt.Errorf("admission lookup failed for (%s, %s): %w", c.ClientID, c.AlertType, err)
	}
	return false, nil
}
