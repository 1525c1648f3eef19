package detectors

import (
	"context"
	"fmt"

	"alerts-backend/internal/models"
)

// DatabaseIssue is a client database connectivity problem.
type DatabaseIssue struct {
	ClientID   string
	ClientName string
	Database   string
	Error      string
}

// Database reports client database connection failures.
type Database struct {
	issues []DatabaseIssue
}

var SampleDatabaseIssues = []DatabaseIssue{
	{
		ClientID:   "CLI001",
		ClientName: "Empresa ABC Ltda",
		Database:   "production_db",
		Error:      "connection timeout after 30 seconds",
	},
}

func NewDatabase(issues []DatabaseIssue) *Database {
	return &Database{issues: issues}
}

func (d *Database) Name() string { return "database" }

func (d *Database) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, issue := range d.issues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    issue.ClientID,
			ClientName:  issue.ClientName,
			AlertType:   "db_connection_error",
			Severity:    models.SeverityCritical,
			Title:       "Database Connection Failure",
			Description: fmt.Sprintf("Could not connect to database %q. Error: %s", issue.Database, issue.Error),
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"database": issue.Database,
				"error":    issue.Error,
			},
		})
	}
	return candidates, nil
}
