package detectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsFixedOrder(t *testing.T) {
	dets := All()
	require.Len(t, dets, 6)

	var names []string
	for _, d := range dets {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"backup", "stock", "nfe", "database", "errorrate", "diskspace"}, names)
}

func TestBackupAnalyze(t *testing.T) {
	d := NewBackup([]Client{{ID: "CLI001", Name: "Empresa ABC Ltda"}})

	candidates, err := d.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "CLI001", c.ClientID)
	assert.Equal(t, "backup_failed", c.AlertType)
	assert.Equal(t, "backup", c.Source)
	assert.Contains(t, c.Title, "Empresa ABC Ltda")
}

func TestStockAnalyze(t *testing.T) {
	d := NewStock(SampleStockItems)

	candidates, err := d.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, len(SampleStockItems))

	c := candidates[0]
	assert.Equal(t, "stock_zero", c.AlertType)
	assert.Equal(t, "PROD12345", c.Metadata["product_id"])
}

func TestAnalyzeEmptyFeed(t *testing.T) {
	for _, d := range []Detector{
		NewBackup(nil),
		NewStock(nil),
		NewNFe(nil),
		NewDatabase(nil),
		NewErrorRate(nil),
		NewDiskSpace(nil),
	} {
		candidates, err := d.Analyze(context.Background())
		require.NoError(t, err, d.Name())
		assert.Empty(t, candidates, d.Name())
	}
}

func TestAnalyzeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewBackup(SampleBackupClients)
	_, err := d.Analyze(ctx)
	assert.Error(t, err)
}

func TestAllCandidatesAreComplete(t *testing.T) {
	for _, d := range All() {
		candidates, err := d.Analyze(context.Background())
		require.NoError(t, err, d.Name())
		for _, c := range candidates {
			assert.NotEmpty(t, c.ClientID, d.Name())
			assert.NotEmpty(t, c.ClientName, d.Name())
			assert.NotEmpty(t, c.AlertType, d.Name())
			assert.NotEmpty(t, c.Title, d.Name())
			assert.True(t, c.Severity.Valid(), d.Name())
			assert.Equal(t, d.Name(), c.Source)
		}
	}
}
