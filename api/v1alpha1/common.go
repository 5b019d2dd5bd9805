package v1alpha1

func StringToJobStatus(s string) JobStatus {
	switch s {
	case string(JobStatusPending):
		return JobStatusPending
	case string(JobStatusProcessing):
		return JobStatusProcessing
	case string(JobStatusCompleted):
		return JobStatusCompleted
	case string(JobStatusFailed):
		return JobStatusFailed
	default:
		return JobStatusPending
	}
}

func StringToIntegrationType(s string) IntegrationType {
	switch s {
	case string(IntegrationTypeSharepoint):
		return IntegrationTypeSharepoint
	case string(IntegrationTypeConfluence):
		return IntegrationTypeConfluence
	default:
		return IntegrationType(s)
	}
}

func StringToExportFormat(s string) ExportFormat {
	switch s {
	case string(ExportFormatWord):
		return ExportFormatWord
	case string(ExportFormatPdf):
		return ExportFormatPdf
	case string(ExportFormatHtml):
		return ExportFormatHtml
	case string(ExportFormatMarkdown):
		return ExportFormatMarkdown
	default:
		return ExportFormatMarkdown
	}
}
