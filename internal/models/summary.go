package models

import "time"

// RunSummary reports the outcome of one check cycle.
type RunSummary struct {
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	Detected       int               `json:"detected"`
	Suppressed     int               `json:"suppressed"`
	Created        int               `json:"created"`
	DetectorErrors map[string]string `json:"detector_errors,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
}

// Stats is the aggregate view the dashboard consumes.
type Stats struct {
	OpenAlerts      int    `json:"openAlerts"`
	InProgress      int    `json:"inProgress"`
	ResolvedToday   int    `json:"resolvedToday"`
	AvgResponseTime string `json:"avgResponseTime"`
	Total           int    `json:"total"`
}
