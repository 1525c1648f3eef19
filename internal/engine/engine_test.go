package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerts-backend/internal/config"
	"alerts-backend/internal/detectors"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

type stubDetector struct {
	name       string
	candidates []models.Candidate
	err        error
}

func (d *stubDetector) Name() string { return d.name }

func (d *stubDetector) Analyze(ctx context.Context) ([]models.Candidate, error) {
	return d.candidates, d.err
}

// captureDispatcher records dispatch calls instead of delivering.
type captureDispatcher struct {
	mu    sync.Mutex
	calls []struct {
		alertID  string
		channels []string
	}
}

func (d *captureDispatcher) Dispatch(ctx context.Context, alert models.Alert, channels []string) map[string]models.DeliveryStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, struct {
		alertID  string
		channels []string
	}{alert.ID, channels})
	results := make(map[string]models.DeliveryStatus, len(channels))
	for _, ch := range channels {
		results[ch] = models.DeliverySent
	}
	return results
}

type captureBroadcaster struct {
	alerts []models.Alert
}

func (b *captureBroadcaster) BroadcastAlert(alert models.Alert) {
	b.alerts = append(b.alerts, alert)
}

type deadStore struct {
	*store.Memory
}

func (s *deadStore) Ping(ctx context.Context) error { return errors.New("store unreachable") }

type writeFailStore struct {
	*store.Memory
}

func (s *writeFailStore) CreateAlert(ctx context.Context, a models.Alert) (string, error) {
	return "", errors.New("insert failed")
}

func newTestEngine(st store.Store, dets []detectors.Detector, dispatcher AlertDispatcher) *Engine {
	admission := NewAdmissionFilter(st, config.DefaultDedupWindows)
	return New(st, admission, dispatcher, dets, []string{"email", "telegram"}, logging.Discard())
}

func candidate(clientID, alertType string) models.Candidate {
	return models.Candidate{
		ClientID:   clientID,
		ClientName: "Client " + clientID,
		AlertType:  alertType,
		Severity:   models.SeverityHigh,
		Title:      alertType + " detected",
		Source:     "test",
	}
}

func TestRunCheckCycleCreatesAndDispatches(t *testing.T) {
	m := store.NewMemory()
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(m, []detectors.Detector{
		&stubDetector{name: "backup", candidates: []models.Candidate{candidate("CLI001", "backup_failed")}},
		&stubDetector{name: "stock", candidates: []models.Candidate{candidate("CLI002", "stock_zero")}},
	}, dispatcher)

	summary, err := eng.RunCheckCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Detected)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Suppressed)
	assert.Empty(t, summary.DetectorErrors)

	alerts, err := m.FindAlerts(context.Background(), store.Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)

	require.Len(t, dispatcher.calls, 2)
	assert.Equal(t, []string{"email", "telegram"}, dispatcher.calls[0].channels)
}

func TestRunCheckCycleDetectorFailureIsIsolated(t *testing.T) {
	m := store.NewMemory()
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(m, []detectors.Detector{
		&stubDetector{name: "backup", err: errors.New("feed unavailable")},
		&stubDetector{name: "stock", candidates: []models.Candidate{candidate("CLI002", "stock_zero")}},
	}, dispatcher)

	summary, err := eng.RunCheckCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	require.Contains(t, summary.DetectorErrors, "backup")
	assert.Equal(t, "feed unavailable", summary.DetectorErrors["backup"])

	alerts, err := m.FindAlerts(context.Background(), store.Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "CLI002", alerts[0].ClientID)
}

func TestRunCheckCycleSuppressesDuplicateWithinCycle(t *testing.T) {
	m := store.NewMemory()
	dispatcher := &captureDispatcher{}
	// two detectors reporting the same condition
	eng := newTestEngine(m, []detectors.Detector{
		&stubDetector{name: "a", candidates: []models.Candidate{candidate("CLI001", "backup_failed")}},
		&stubDetector{name: "b", candidates: []models.Candidate{candidate("CLI001", "backup_failed")}},
	}, dispatcher)

	summary, err := eng.RunCheckCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Detected)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Suppressed)
	assert.Len(t, dispatcher.calls, 1)
}

func TestRunCheckCycleAbortsWhenStoreUnreachable(t *testing.T) {
	dead := &deadStore{Memory: store.NewMemory()}
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(dead, []detectors.Detector{
		&stubDetector{name: "backup", candidates: []models.Candidate{candidate("CLI001", "backup_failed")}},
	}, dispatcher)

	_, err := eng.RunCheckCycle(context.Background())
	require.Error(t, err)
	assert.Empty(t, dispatcher.calls)
}

func TestRunCheckCycleAlwaysWritesSummaryLog(t *testing.T) {
	m := store.NewMemory()
	eng := newTestEngine(m, nil, &captureDispatcher{})

	_, err := eng.RunCheckCycle(context.Background())
	require.NoError(t, err)

	logs, err := m.SystemLogs(context.Background(), store.SystemLogFilter{Origin: "AlertEngine"}, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "0 alert(s) created")
	assert.Equal(t, 0, logs[0].Metadata["detected"])
}

func TestProcessCandidateFailOpenOnAdmissionError(t *testing.T) {
	broken := &brokenLookupStore{Memory: store.NewMemory()}
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(broken, nil, dispatcher)

	created, err := eng.ProcessCandidate(context.Background(), candidate("CLI001", "backup_failed"))
	require.NotNil(t, created)
	assert.Error(t, err)
	assert.Len(t, dispatcher.calls, 1)
}

func TestProcessCandidatePersistFailure(t *testing.T) {
	failing := &writeFailStore{Memory: store.NewMemory()}
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(failing, nil, dispatcher)

	created, err := eng.ProcessCandidate(context.Background(), candidate("CLI001", "backup_failed"))
	assert.Nil(t, created)
	assert.Error(t, err)
	assert.Empty(t, dispatcher.calls)
}

func TestProcessCandidateBroadcastsCreatedAlerts(t *testing.T) {
	m := store.NewMemory()
	b := &captureBroadcaster{}
	eng := newTestEngine(m, nil, &captureDispatcher{})
	eng.SetBroadcaster(b)

	created, err := eng.ProcessCandidate(context.Background(), candidate("CLI001", "backup_failed"))
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, b.alerts, 1)
	assert.Equal(t, created.ID, b.alerts[0].ID)

	// suppressed duplicates are not broadcast
	dup, err := eng.ProcessCandidate(context.Background(), candidate("CLI001", "backup_failed"))
	require.NoError(t, err)
	assert.Nil(t, dup)
	assert.Len(t, b.alerts, 1)
}

func TestRecurrenceAfterResolution(t *testing.T) {
	m := store.NewMemory()
	dispatcher := &captureDispatcher{}
	eng := newTestEngine(m, nil, dispatcher)

	created, err := eng.ProcessCandidate(context.Background(), candidate("CLI002", "stock_zero"))
	require.NoError(t, err)
	require.NotNil(t, created)

	// duplicate while still open: suppressed
	dup, err := eng.ProcessCandidate(context.Background(), candidate("CLI002", "stock_zero"))
	require.NoError(t, err)
	assert.Nil(t, dup)

	// resolve it, then the same condition is a fresh alert
	status := models.StatusResolved
	resolvedBy := "maria"
	resolvedAt := time.Now()
	ok, err := m.UpdateAlert(context.Background(), created.ID, store.Update{
		Status:     &status,
		ResolvedBy: &resolvedBy,
		ResolvedAt: &resolvedAt,
	})
	require.NoError(t, err)
	require.True(t, ok)

	again, err := eng.ProcessCandidate(context.Background(), candidate("CLI002", "stock_zero"))
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.NotEqual(t, created.ID, again.ID)
}
