// Package metrics exposes prometheus counters for the alert pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alerts_created_total",
		Help: "Alerts admitted and persisted.",
	})

	AlertsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alerts_suppressed_total",
		Help: "Candidates suppressed as duplicates within the dedup window.",
	})

	DetectorErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "detector_errors_total",
		Help: "Detector runs that failed.",
	}, []string{"detector"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Successful channel deliveries.",
	}, []string{"channel"})

	NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Failed channel deliveries, including unconfigured channels.",
	}, []string{"channel"})
)
