package events

// Event kinds emitted by the export service.
const (
	ExportJobCreatedKind   string = "kairos.isdp.events.export_job_created"
	ExportJobCompletedKind string = "kairos.isdp.events.export_job_completed"
	ExportJobFailedKind    string = "kairos.isdp.events.export_job_failed"
)

// ExportJobEvent is the payload shared by all export lifecycle events.
type ExportJobEvent struct {
	JobID           string `json:"job_id"`
	ProjectID       string `json:"project_id"`
	IntegrationType string `json:"integration_type"`
	Status          string `json:"status"`
	TotalDocuments  int    `json:"total_documents"`
	Processed       int    `json:"processed_documents"`
	Error           string `json:"error,omitempty"`
}
