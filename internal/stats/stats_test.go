package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

func seed(t *testing.T, m *store.Memory, status models.Status, createdAt time.Time, resolvedAt *time.Time) {
	t.Helper()
	a := models.Alert{
		ClientID:   "CLI001",
		AlertType:  "stock_zero",
		Severity:   models.SeverityHigh,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
		ResolvedAt: resolvedAt,
	}
	_, err := m.CreateAlert(context.Background(), a)
	require.NoError(t, err)
}

func resolvedAfter(createdAt time.Time, d time.Duration) *time.Time {
	at := createdAt.Add(d)
	return &at
}

func TestComputeCounts(t *testing.T) {
	m := store.NewMemory()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	seed(t, m, models.StatusOpen, now.Add(-time.Hour), nil)
	seed(t, m, models.StatusOpen, now.Add(-2*time.Hour), nil)
	seed(t, m, models.StatusInProgress, now.Add(-3*time.Hour), nil)

	// resolved today
	created := now.Add(-4 * time.Hour)
	seed(t, m, models.StatusResolved, created, resolvedAfter(created, 30*time.Minute))

	// resolved yesterday
	old := now.Add(-30 * time.Hour)
	seed(t, m, models.StatusResolved, old, resolvedAfter(old, 90*time.Minute))

	a := New(m, 100)
	a.now = func() time.Time { return now }

	s, err := a.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, s.OpenAlerts)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.ResolvedToday)
	assert.Equal(t, 5, s.Total)
	// mean of 30min and 90min
	assert.Equal(t, "1h 0min", s.AvgResponseTime)
}

func TestComputeEmptyStore(t *testing.T) {
	a := New(store.NewMemory(), 100)

	s, err := a.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, s.OpenAlerts)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, "N/A", s.AvgResponseTime)
}

func TestAverageResolutionFormatting(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	mk := func(d time.Duration) models.Alert {
		at := base.Add(d)
		return models.Alert{CreatedAt: base, ResolvedAt: &at}
	}

	assert.Equal(t, "N/A", averageResolution(nil))
	assert.Equal(t, "N/A", averageResolution([]models.Alert{{CreatedAt: base}}))

	// 10, 20, 30 minutes -> 20min
	assert.Equal(t, "20min", averageResolution([]models.Alert{
		mk(10 * time.Minute), mk(20 * time.Minute), mk(30 * time.Minute),
	}))

	assert.Equal(t, "59min", averageResolution([]models.Alert{mk(59 * time.Minute)}))
	assert.Equal(t, "1h 0min", averageResolution([]models.Alert{mk(60 * time.Minute)}))
	assert.Equal(t, "2h 15min", averageResolution([]models.Alert{mk(135 * time.Minute)}))

	// unresolved entries are skipped, not counted as zero
	assert.Equal(t, "30min", averageResolution([]models.Alert{
		mk(30 * time.Minute), {CreatedAt: base},
	}))
}
