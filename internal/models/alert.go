package models

import (
	"fmt"
	"time"
)

// Severity ranks how urgent a detected problem is. It is set by the
// detector and never changes after the alert is created.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Status is the alert lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Active reports whether the alert still counts against the dedup window.
func (s Status) Active() bool {
	return s == StatusOpen || s == StatusInProgress
}

// Candidate is a problem report produced by a detector. It is never
// persisted as-is; it becomes an Alert only if admission accepts it.
type Candidate struct {
	ClientID    string                 `json:"client_id" binding:"required"`
	ClientName  string                 `json:"client_name" binding:"required"`
	AlertType   string                 `json:"alert_type" binding:"required"`
	Severity    Severity               `json:"severity" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Source      string                 `json:"source"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Alert is a persisted problem record with a lifecycle.
type Alert struct {
	ID          string                 `json:"id"`
	ClientID    string                 `json:"client_id"`
	ClientName  string                 `json:"client_name"`
	AlertType   string                 `json:"alert_type"`
	Severity    Severity               `json:"severity"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Source      string                 `json:"source"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Status      Status                 `json:"status"`
	AssignedTo  string                 `json:"assigned_to,omitempty"`
	ResolvedBy  string                 `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time             `json:"resolved_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewAlert builds an open Alert from an admitted candidate. The store
// assigns the ID on creation.
func NewAlert(c Candidate, now time.Time) Alert {
	return Alert{
		ClientID:    c.ClientID,
		ClientName:  c.ClientName,
		AlertType:   c.AlertType,
		Severity:    c.Severity,
		Title:       c.Title,
		Description: c.Description,
		Source:      c.Source,
		Metadata:    c.Metadata,
		Status:      StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidTransition reports whether the lifecycle permits moving from one
// status to another. Resolved is terminal; open may skip straight to
// resolved (no mandatory triage step).
func ValidTransition(from, to Status) bool {
	switch from {
	case StatusOpen:
		return to == StatusInProgress || to == StatusResolved
	case StatusInProgress:
		return to == StatusResolved
	}
	return false
}

// Transition applies a status change in place. Resolving requires an
// actor and stamps ResolvedAt.
func (a *Alert) Transition(to Status, actor string, now time.Time) error {
	if !ValidTransition(a.Status, to) {
		return fmt.Errorf("invalid status transition %s -> %s", a.Status, to)
	}
	if to == StatusResolved {
		if actor == "" {
			return fmt.Errorf("resolving an alert requires resolved_by")
		}
		a.ResolvedBy = actor
		resolvedAt := now
		a.ResolvedAt = &resolvedAt
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}

// Assign sets the triage owner. Only allowed while the alert is active.
func (a *Alert) Assign(user string, now time.Time) error {
	if !a.Status.Active() {
		return fmt.Errorf("cannot reassign a %s alert", a.Status)
	}
	a.AssignedTo = user
	a.UpdatedAt = now
	return nil
}
