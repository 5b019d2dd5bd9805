package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Per-document result status constants
const (
	ResultStatusSuccess = "success"
	ResultStatusFailed  = "failed"
)

// ExportResult is one per-document outcome, serialized into the job's
// export_results column. The sequence is append-only and follows the
// order of the job's document ids.
type ExportResult struct {
	DocumentID   string `json:"document_id"`
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
	ExportedURL  string `json:"exported_url,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ExportTime   int64  `json:"export_time"`
}

// ExportJob is the persisted state record of one batch export request.
// StartedAt and CompletedAt are epoch milliseconds, zero until set.
type ExportJob struct {
	ID                 uuid.UUID                  `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt          time.Time                  `gorm:"not null"`
	UpdatedAt          time.Time
	ProjectID          uuid.UUID                  `gorm:"not null;index:export_jobs_project_id_idx"`
	DocumentIDs        *JSONField[[]string]       `gorm:"type:jsonb;not null"`
	IntegrationID      uuid.UUID                  `gorm:"not null"`
	IntegrationType    string                     `gorm:"not null;type:VARCHAR(100)"`
	ExportFormat       string                     `gorm:"not null;type:VARCHAR(50)"`
	Status             string                     `gorm:"not null;type:VARCHAR(50)"`
	Progress           int                        `gorm:"not null;default:0"`
	TotalDocuments     int                        `gorm:"not null"`
	ProcessedDocuments int                        `gorm:"not null;default:0"`
	ExportResults      *JSONField[[]ExportResult] `gorm:"type:jsonb"`
	ErrorMessage       string
	StartedAt          int64                      `gorm:"not null;default:0"`
	CompletedAt        int64                      `gorm:"not null;default:0"`
	ExportedURLs       *JSONField[[]string]       `gorm:"type:jsonb"`
}

type ExportJobList []ExportJob

func (j ExportJob) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

// Results returns the decoded result sequence, never nil.
func (j *ExportJob) Results() []ExportResult {
	if j.ExportResults == nil {
		return []ExportResult{}
	}
	return j.ExportResults.Data
}
