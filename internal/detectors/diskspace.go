package detectors

import (
	"context"
	"fmt"

	"alerts-backend/internal/models"
)

// DiskReading is a low-disk measurement for one server.
type DiskReading struct {
	ClientID         string
	ClientName       string
	Server           string
	FreeSpacePercent int
	FreeSpaceGB      int
}

// DiskSpace reports servers running low on disk.
type DiskSpace struct {
	readings []DiskReading
}

var SampleDiskServers = []DiskReading{
	{
		ClientID:         "CLI005",
		ClientName:       "Sistema Delta",
		Server:           "srv-prod-01",
		FreeSpacePercent: 8,
		FreeSpaceGB:      45,
	},
}

func NewDiskSpace(readings []DiskReading) *DiskSpace {
	return &DiskSpace{readings: readings}
}

func (d *DiskSpace) Name() string { return "diskspace" }

func (d *DiskSpace) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, r := range d.readings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			AlertType:   "disk_space_low",
			Severity:    models.SeverityHigh,
			Title:       fmt.Sprintf("Low Disk Space - %s", r.Server),
			Description: fmt.Sprintf("Server %q has only %d%% free space left (%dGB).", r.Server, r.FreeSpacePercent, r.FreeSpaceGB),
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"server":             r.Server,
				"free_space_percent": r.FreeSpacePercent,
				"free_space_gb":      r.FreeSpaceGB,
			},
		})
	}
	return candidates, nil
}
