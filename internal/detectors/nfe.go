package detectors

import (
	"context"
	"fmt"

	"alerts-backend/internal/models"
)

// NFeError is a failed electronic invoice submission.
type NFeError struct {
	ClientID     string
	ClientName   string
	NFeNumber    string
	ErrorCode    string
	ErrorMessage string
}

// NFe reports failed NF-e submissions to SEFAZ.
type NFe struct {
	errors []NFeError
}

var SampleNFeErrors = []NFeError{
	{
		ClientID:     "CLI003",
		ClientName:   "Indústria Beta",
		NFeNumber:    "45678",
		ErrorCode:    "218",
		ErrorMessage: "digital certificate expired",
	},
}

func NewNFe(errors []NFeError) *NFe {
	return &NFe{errors: errors}
}

func (d *NFe) Name() string { return "nfe" }

func (d *NFe) Analyze(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	for _, e := range d.errors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, models.Candidate{
			ClientID:    e.ClientID,
			ClientName:  e.ClientName,
			AlertType:   "nfe_error",
			Severity:    models.SeverityCritical,
			Title:       fmt.Sprintf("NF-e Submission Error #%s", e.NFeNumber),
			Description: fmt.Sprintf("Failed to submit NF-e to SEFAZ. Code: %s - %s", e.ErrorCode, e.ErrorMessage),
			Source:      d.Name(),
			Metadata: map[string]interface{}{
				"nfe_number":    e.NFeNumber,
				"error_code":    e.ErrorCode,
				"error_message": e.ErrorMessage,
			},
		})
	}
	return candidates, nil
}
