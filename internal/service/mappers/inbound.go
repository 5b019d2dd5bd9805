package mappers

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	api "github.com/apatilgtn/Kairos-isdp-sub001/api/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// ExportJobForm is the validated input of StartExport.
type ExportJobForm struct {
	ProjectID       uuid.UUID
	DocumentIDs     []uuid.UUID
	IntegrationID   uuid.UUID
	IntegrationType string
	ExportFormat    string
}

// ExportJobFormFromApi parses the API request body into a form,
// rejecting malformed ids before the service layer sees them.
func ExportJobFormFromApi(body api.ExportJobCreate) (ExportJobForm, error) {
	projectID, err := uuid.Parse(body.ProjectID)
	if err != nil {
		return ExportJobForm{}, fmt.Errorf("invalid project id: %w", err)
	}

	integrationID, err := uuid.Parse(body.IntegrationID)
	if err != nil {
		return ExportJobForm{}, fmt.Errorf("invalid integration id: %w", err)
	}

	documentIDs := make([]uuid.UUID, 0, len(body.DocumentIDs))
	for _, raw := range body.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ExportJobForm{}, fmt.Errorf("invalid document id %q: %w", raw, err)
		}
		documentIDs = append(documentIDs, id)
	}

	return ExportJobForm{
		ProjectID:       projectID,
		DocumentIDs:     documentIDs,
		IntegrationID:   integrationID,
		IntegrationType: string(api.StringToIntegrationType(string(body.IntegrationType))),
		ExportFormat:    string(api.StringToExportFormat(string(body.ExportFormat))),
	}, nil
}

// ToExportJob builds the initial persisted job record: pending, zero
// progress, empty results.
func (f ExportJobForm) ToExportJob() model.ExportJob {
	documentIDs := make([]string, 0, len(f.DocumentIDs))
	for _, id := range f.DocumentIDs {
		documentIDs = append(documentIDs, id.String())
	}

	return model.ExportJob{
		ID:                 uuid.New(),
		CreatedAt:          time.Now(),
		ProjectID:          f.ProjectID,
		DocumentIDs:        model.MakeJSONField(documentIDs),
		IntegrationID:      f.IntegrationID,
		IntegrationType:    f.IntegrationType,
		ExportFormat:       f.ExportFormat,
		Status:             model.JobStatusPending,
		Progress:           0,
		TotalDocuments:     len(f.DocumentIDs),
		ProcessedDocuments: 0,
		ExportResults:      model.MakeJSONField([]model.ExportResult{}),
		ExportedURLs:       model.MakeJSONField([]string{}),
	}
}
