package validator

import (
	"testing"

	"github.com/google/uuid"

	"github.com/apatilgtn/Kairos-isdp-sub001/api/v1alpha1"
)

func TestExportJobCreateFormValidators(t *testing.T) {
	tests := []struct {
		name       string
		form       v1alpha1.ExportJobCreate
		shouldFail bool
	}{
		{
			name: "validation ok",
			form: v1alpha1.ExportJobCreate{
				ProjectID:       uuid.NewString(),
				DocumentIDs:     []string{uuid.NewString(), uuid.NewString()},
				IntegrationID:   uuid.NewString(),
				IntegrationType: v1alpha1.IntegrationTypeConfluence,
				ExportFormat:    v1alpha1.ExportFormatMarkdown,
			},
			shouldFail: false,
		},
		{
			name: "validation ok -- type and format omitted",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     uuid.NewString(),
				DocumentIDs:   []string{uuid.NewString()},
				IntegrationID: uuid.NewString(),
			},
			shouldFail: false,
		},
		{
			name: "validation ko -- project id is missing",
			form: v1alpha1.ExportJobCreate{
				DocumentIDs:   []string{uuid.NewString()},
				IntegrationID: uuid.NewString(),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- project id is not a uuid",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     "not-a-uuid",
				DocumentIDs:   []string{uuid.NewString()},
				IntegrationID: uuid.NewString(),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- integration id is missing",
			form: v1alpha1.ExportJobCreate{
				ProjectID:   uuid.NewString(),
				DocumentIDs: []string{uuid.NewString()},
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- document ids are missing",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     uuid.NewString(),
				IntegrationID: uuid.NewString(),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- document ids are empty",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     uuid.NewString(),
				DocumentIDs:   []string{},
				IntegrationID: uuid.NewString(),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- one document id is not a uuid",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     uuid.NewString(),
				DocumentIDs:   []string{uuid.NewString(), "nope"},
				IntegrationID: uuid.NewString(),
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- unknown integration type",
			form: v1alpha1.ExportJobCreate{
				ProjectID:       uuid.NewString(),
				DocumentIDs:     []string{uuid.NewString()},
				IntegrationID:   uuid.NewString(),
				IntegrationType: "teams",
			},
			shouldFail: true,
		},
		{
			name: "validation ko -- unknown export format",
			form: v1alpha1.ExportJobCreate{
				ProjectID:     uuid.NewString(),
				DocumentIDs:   []string{uuid.NewString()},
				IntegrationID: uuid.NewString(),
				ExportFormat:  "latex",
			},
			shouldFail: true,
		},
	}

	v := NewValidator()
	v.Register(NewExportValidationRules()...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if (err != nil) != tt.shouldFail {
				t.Errorf("validation: error = %v, shouldFail = %v", err, tt.shouldFail)
				return
			}
		})
	}
}
