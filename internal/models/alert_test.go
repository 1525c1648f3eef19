package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusResolved, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusResolved, StatusInProgress, false},
		{StatusResolved, StatusResolved, false},
		{StatusOpen, StatusOpen, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionResolveStampsFields(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	alert := NewAlert(Candidate{
		ClientID:   "CLI001",
		ClientName: "Empresa ABC Ltda",
		AlertType:  "backup_failed",
		Severity:   SeverityCritical,
		Title:      "Backup failed",
	}, now)

	resolvedAt := now.Add(45 * time.Minute)
	require.NoError(t, alert.Transition(StatusResolved, "maria", resolvedAt))

	assert.Equal(t, StatusResolved, alert.Status)
	assert.Equal(t, "maria", alert.ResolvedBy)
	require.NotNil(t, alert.ResolvedAt)
	assert.Equal(t, resolvedAt, *alert.ResolvedAt)
	assert.Equal(t, resolvedAt, alert.UpdatedAt)
}

func TestTransitionResolveRequiresActor(t *testing.T) {
	now := time.Now()
	alert := NewAlert(Candidate{ClientID: "CLI001", AlertType: "stock_zero", Severity: SeverityHigh}, now)

	err := alert.Transition(StatusResolved, "", now)
	require.Error(t, err)
	assert.Equal(t, StatusOpen, alert.Status)
	assert.Nil(t, alert.ResolvedAt)
}

func TestTransitionResolvedIsTerminal(t *testing.T) {
	now := time.Now()
	alert := NewAlert(Candidate{ClientID: "CLI001", AlertType: "nfe_error", Severity: SeverityCritical}, now)
	require.NoError(t, alert.Transition(StatusResolved, "joao", now))

	assert.Error(t, alert.Transition(StatusOpen, "", now))
	assert.Error(t, alert.Transition(StatusInProgress, "", now))
}

func TestAssignOnlyWhileActive(t *testing.T) {
	now := time.Now()
	alert := NewAlert(Candidate{ClientID: "CLI002", AlertType: "stock_zero", Severity: SeverityHigh}, now)

	require.NoError(t, alert.Assign("joao", now))
	assert.Equal(t, "joao", alert.AssignedTo)

	require.NoError(t, alert.Transition(StatusInProgress, "", now))
	require.NoError(t, alert.Assign("maria", now))

	require.NoError(t, alert.Transition(StatusResolved, "maria", now))
	assert.Error(t, alert.Assign("pedro", now))
	assert.Equal(t, "maria", alert.AssignedTo)
}

func TestNewAlertDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	alert := NewAlert(Candidate{
		ClientID:    "CLI003",
		ClientName:  "Indústria Beta",
		AlertType:   "disk_space_low",
		Severity:    SeverityHigh,
		Title:       "Disk almost full",
		Description: "92% used",
		Source:      "disk_monitor",
		Metadata:    map[string]interface{}{"percent": 92},
	}, now)

	assert.Equal(t, StatusOpen, alert.Status)
	assert.Empty(t, alert.ID)
	assert.Equal(t, now, alert.CreatedAt)
	assert.Equal(t, now, alert.UpdatedAt)
	assert.Nil(t, alert.ResolvedAt)
	assert.Equal(t, "disk_monitor", alert.Source)
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusOpen.Active())
	assert.True(t, StatusInProgress.Active())
	assert.False(t, StatusResolved.Active())
}

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Severity("urgent").Valid())
	assert.False(t, Severity("").Valid())
}
