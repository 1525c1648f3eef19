// Package engine orchestrates check cycles: it runs every registered
// detector, admits candidates through the dedup filter, persists
// accepted alerts and triggers their dispatch.
package engine

import (
	"context"
	"fmt"
	"time"

	"alerts-backend/internal/detectors"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/metrics"
	"alerts-backend/internal/models"
	"alerts-backend/internal/store"
)

// AlertDispatcher fans one alert out across channels. Satisfied by
// dispatch.Dispatcher.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert models.Alert, channels []string) map[string]models.DeliveryStatus
}

// Broadcaster pushes newly created alerts to live listeners (websocket
// hub). Optional.
type Broadcaster interface {
	BroadcastAlert(alert models.Alert)
}

// Engine runs check cycles against a store.
type Engine struct {
	store       store.Store
	admission   *AdmissionFilter
	dispatcher  AlertDispatcher
	detectors   []detectors.Detector
	channels    []string
	logger      *logging.Logger
	broadcaster Broadcaster
	now         func() time.Time
}

// New wires an engine. Detectors run in the order given.
func New(st store.Store, admission *AdmissionFilter, dispatcher AlertDispatcher, dets []detectors.Detector, channels []string, logger *logging.Logger) *Engine {
	return &Engine{
		store:      st,
		admission:  admission,
		dispatcher: dispatcher,
		detectors:  dets,
		channels:   channels,
		logger:     logger,
		now:        time.Now,
	}
}

// SetBroadcaster attaches a live-update sink for created alerts.
func (e *Engine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

// RunCheckCycle executes all detectors once. Detector failures, admission
// lookup failures and storage write failures are recovered locally and
// reported in the summary; only an unreachable store at cycle start
// aborts the run.
func (e *Engine) RunCheckCycle(ctx context.Context) (models.RunSummary, error) {
	summary := models.RunSummary{
		StartedAt:      e.now(),
		DetectorErrors: make(map[string]string),
	}

	if err := e.store.Ping(ctx); err != nil {
		return summary, fmt.Errorf("check cycle aborted: %w", err)
	}

	e.logger.Infof("Starting check cycle with %d detectors", len(e.detectors))

	for _, det := range e.detectors {
		candidates, err := det.Analyze(ctx)
		if err != nil {
			e.logger.Errorf("Detector %s failed: %v", det.Name(), err)
			summary.DetectorErrors[det.Name()] = err.Error()
			metrics.DetectorErrors.WithLabelValues(det.Name()).Inc()
			continue
		}
		e.logger.Infof("Detector %s reported %d candidate(s)", det.Name(), len(candidates))
		summary.Detected += len(candidates)

		for _, c := range candidates {
			created, err := e.ProcessCandidate(ctx, c)
			if err != nil {
				summary.Errors = append(summary.Errors, err.Error())
			}
			if created != nil {
				summary.Created++
			} else if err == nil {
				summary.Suppressed++
			}
		}
	}

	summary.FinishedAt = e.now()
	e.logger.Infof("Check cycle finished: detected=%d created=%d suppressed=%d",
		summary.Detected, summary.Created, summary.Suppressed)

	// Always written, so a quiet cycle is distinguishable from a run
	// that never happened.
	logEntry := models.SystemLogEntry{
		Origin:  "AlertEngine",
		Level:   "INFO",
		Message: fmt.Sprintf("Check cycle completed: %d alert(s) created", summary.Created),
		Metadata: map[string]interface{}{
			"detected": summary.Detected,
			"created":  summary.Created,
		},
		Timestamp: summary.FinishedAt,
	}
	if err := e.store.AppendSystemLog(ctx, logEntry); err != nil {
		e.logger.Errorf("Failed to write cycle summary log: %v", err)
		summary.Errors = append(summary.Errors, err.Error())
	}

	return summary, nil
}

// ProcessCandidate runs one candidate through admission, persistence and
// dispatch. Returns the created alert, or nil when the candidate was
// suppressed or the write failed. Dispatch completes before it returns
// so the notification log stays deterministic per run.
func (e *Engine) ProcessCandidate(ctx context.Context, c models.Candidate) (*models.Alert, error) {
	accepted, admitErr := e.admission.Admit(ctx, c)
	if !accepted {
		e.logger.Debugf("Suppressed duplicate (%s, %s)", c.ClientID, c.AlertType)
		metrics.AlertsSuppressed.Inc()
		return nil, nil
	}
	if admitErr != nil {
		// Fail-open admission: surfaced, but the candidate still
		// becomes an alert.
		e.logger.Warnf("Admission check degraded, accepting candidate: %v", admitErr)
	}

	alert := models.NewAlert(c, e.now())
	id, err := e.store.CreateAlert(ctx, alert)
	if err != nil {
		e.logger.Errorf("Failed to persist alert (%s, %s): %v", c.ClientID, c.AlertType, err)
		if admitErr != nil {
			return nil, fmt.Errorf("%v; %w", admitErr, err)
		}
		return nil, err
	}
	alert.ID = id
	metrics.AlertsCreated.Inc()
	e.logger.Infof("Created alert %s (%s, %s, severity=%s)", id, c.ClientID, c.AlertType, c.Severity)

	e.dispatcher.Dispatch(ctx, alert, e.channels)

	if e.broadcaster != nil {
		e.broadcaster.BroadcastAlert(alert)
	}

	return &alert, admitErr
}
