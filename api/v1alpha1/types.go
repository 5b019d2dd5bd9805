package v1alpha1

// API representation of export jobs and their per-document results.

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusFailed  ResultStatus = "failed"
)

type IntegrationType string

const (
	IntegrationTypeSharepoint IntegrationType = "sharepoint"
	IntegrationTypeConfluence IntegrationType = "confluence"
)

type ExportFormat string

const (
	ExportFormatWord     ExportFormat = "word"
	ExportFormatPdf      ExportFormat = "pdf"
	ExportFormatHtml     ExportFormat = "html"
	ExportFormatMarkdown ExportFormat = "markdown"
)

// ExportJobCreate is the request body of POST /exports.
type ExportJobCreate struct {
	ProjectID       string          `json:"project_id" validate:"required,uuid4"`
	DocumentIDs     []string        `json:"document_ids" validate:"required,min=1,dive,uuid4"`
	IntegrationID   string          `json:"integration_id" validate:"required,uuid4"`
	IntegrationType IntegrationType `json:"integration_type" validate:"omitempty,integration_type"`
	ExportFormat    ExportFormat    `json:"export_format" validate:"omitempty,export_format"`
}

type ExportResult struct {
	DocumentID   string       `json:"document_id"`
	DocumentType string       `json:"document_type"`
	Status       ResultStatus `json:"status"`
	ExportedURL  string       `json:"exported_url,omitempty"`
	FileSize     int64        `json:"file_size,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	ExportTime   int64        `json:"export_time"`
}

type ExportJob struct {
	ID                 string          `json:"id"`
	ProjectID          string          `json:"project_id"`
	DocumentIDs        []string        `json:"document_ids"`
	IntegrationID      string          `json:"integration_id"`
	IntegrationType    IntegrationType `json:"integration_type"`
	ExportFormat       ExportFormat    `json:"export_format"`
	Status             JobStatus       `json:"status"`
	Progress           int             `json:"progress"`
	TotalDocuments     int             `json:"total_documents"`
	ProcessedDocuments int             `json:"processed_documents"`
	ExportResults      []ExportResult  `json:"export_results"`
	ErrorMessage       string          `json:"error_message,omitempty"`
	StartedAt          int64           `json:"started_at"`
	CompletedAt        int64           `json:"completed_at"`
	ExportedURLs       []string        `json:"exported_urls"`
	CreatedAt          int64           `json:"created_at"`
}

type ExportJobList []ExportJob

// Error is the generic error body returned by the API.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"request_id,omitempty"`
}
