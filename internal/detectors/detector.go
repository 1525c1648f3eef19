// Package detectors holds the pluggable problem detectors. Each one
// inspects a downstream concern for every monitored client and yields
// candidate reports; admission and persistence happen in the engine.
//
// The concrete detectors here run on injected sample feeds. Production
// deployments supply implementations that query the real systems.
package detectors

import (
	"context"

	"alerts-backend/internal/models"
)

// Detector produces candidate problem reports for one concern.
// Analyze returns an empty slice when nothing is wrong; an error marks
// the whole detector run as failed without aborting the cycle.
type Detector interface {
	Name() string
	Analyze(ctx context.Context) ([]models.Candidate, error)
}

// Client identifies a monitored tenant.
type Client struct {
	ID   string
	Name string
}

// All returns the default detector set in its fixed registration order.
// Order carries no semantics but keeps cycle logs reproducible.
func All() []Detector {
	return []Detector{
		NewBackup(SampleBackupClients),
		NewStock(SampleStockItems),
		NewNFe(SampleNFeErrors),
		NewDatabase(SampleDatabaseIssues),
		NewErrorRate(SampleErrorRates),
		NewDiskSpace(SampleDiskServers),
	}
}
