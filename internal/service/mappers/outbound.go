package mappers

import (
	api "github.com/apatilgtn/Kairos-isdp-sub001/api/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

func ExportJobToApi(job *model.ExportJob) api.ExportJob {
	documentIDs := []string{}
	if job.DocumentIDs != nil {
		documentIDs = job.DocumentIDs.Data
	}

	exportedURLs := []string{}
	if job.ExportedURLs != nil {
		exportedURLs = job.ExportedURLs.Data
	}

	results := make([]api.ExportResult, 0, len(job.Results()))
	for _, r := range job.Results() {
		results = append(results, api.ExportResult{
			DocumentID:   r.DocumentID,
			DocumentType: r.DocumentType,
			Status:       api.ResultStatus(r.Status),
			ExportedURL:  r.ExportedURL,
			FileSize:     r.FileSize,
			ErrorMessage: r.ErrorMessage,
			ExportTime:   r.ExportTime,
		})
	}

	return api.ExportJob{
		ID:                 job.ID.String(),
		ProjectID:          job.ProjectID.String(),
		DocumentIDs:        documentIDs,
		IntegrationID:      job.IntegrationID.String(),
		IntegrationType:    api.StringToIntegrationType(job.IntegrationType),
		ExportFormat:       api.StringToExportFormat(job.ExportFormat),
		Status:             api.StringToJobStatus(job.Status),
		Progress:           job.Progress,
		TotalDocuments:     job.TotalDocuments,
		ProcessedDocuments: job.ProcessedDocuments,
		ExportResults:      results,
		ErrorMessage:       job.ErrorMessage,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		ExportedURLs:       exportedURLs,
		CreatedAt:          job.CreatedAt.UnixMilli(),
	}
}

func ExportJobListToApi(jobs model.ExportJobList) api.ExportJobList {
	list := make(api.ExportJobList, 0, len(jobs))
	for i := range jobs {
		list = append(list, ExportJobToApi(&jobs[i]))
	}
	return list
}
