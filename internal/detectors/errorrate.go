package detectors

import (
	"context"
	"fmt"

	"alerts-backend/internal/models"
)

// ErrorRateReading is an elevated error count on one client endpoint.
type ErrorRateReading struct {
	ClientID   string
	ClientName string
	ErrorCount int
	Timeframe  string
	Endpoint   string
}

// ErrorRate reports clients with elevated API error rates.
type ErrorRate struct {
	readings []ErrorRateReading
}

var SampleErrorRates = []ErrorRateReading{
	{
		ClientID:   "CLI004",
		ClientName: "Loja Virtual Gama",
		ErrorCount: 127,
		Timeframe:  "1 hour",
		Endpoint:   "/api/payments",
	},
}

func NewErrorRate(readings []ErrorRateReading) *ErrorRate {
	return &ErrorRate{readings: readings}
}

func (d *ErrorRate) Name() string { return "errorrate" }

func (d *ErrorRate) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, r := range d.readings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			AlertType:   "high_error_rate",
			Severity:    models.SeverityHigh,
			Title:       fmt.Sprintf("High Error Rate - %s", r.Endpoint),
			Description: fmt.Sprintf("Detected %d errors in the last %s on endpoint %s.", r.ErrorCount, r.Timeframe, r.Endpoint),
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"error_count": r.ErrorCount,
				"timeframe":   r.Timeframe,
				"endpoint":    r.Endpoint,
			},
		})
	}
	return candidates, nil
}
