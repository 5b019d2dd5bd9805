package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/events"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service/mappers"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
	"github.com/apatilgtn/Kairos-isdp-sub001/pkg/metrics"
)

// ExportService owns the export-job state machine. It is the only
// writer of ExportJob records; everyone else observes them through
// GetJob/ListJobs.
type ExportService struct {
	store          store.Store
	registry       *transport.Registry
	eventProducer  *events.EventProducer
	adapterTimeout time.Duration
}

func NewExportService(store store.Store, registry *transport.Registry, eventProducer *events.EventProducer, adapterTimeout time.Duration) *ExportService {
	if adapterTimeout == 0 {
		adapterTimeout = 60 * time.Second
	}
	return &ExportService{
		store:          store,
		registry:       registry,
		eventProducer:  eventProducer,
		adapterTimeout: adapterTimeout,
	}
}

// StartExport validates the request, persists a pending job and kicks
// off the processing phase in the background. It returns the job as
// created; progress is observed by polling GetJob. Validation failures
// surface as typed errors and leave nothing persisted.
func (s *ExportService) StartExport(ctx context.Context, form mappers.ExportJobForm) (*model.ExportJob, error) {
	logger := zap.S().Named("export_service")

	if len(form.DocumentIDs) == 0 {
		return nil, NewErrEmptyBatch()
	}

	project, err := s.store.Project().Get(ctx, form.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProjectNotFound(form.ProjectID)
		}
		return nil, fmt.Errorf("failed to resolve project: %w", err)
	}

	integration, err := s.store.Integration().Get(ctx, form.IntegrationID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrIntegrationNotFound(form.IntegrationID)
		}
		return nil, fmt.Errorf("failed to resolve integration: %w", err)
	}
	if form.IntegrationType != "" && form.IntegrationType != integration.Type {
		return nil, NewErrIntegrationTypeMismatch(integration.ID, form.IntegrationType, integration.Type)
	}

	// resolve the whole batch up front, in input order
	documents := make([]model.Document, 0, len(form.DocumentIDs))
	for _, id := range form.DocumentIDs {
		document, err := s.store.Document().Get(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return nil, NewErrDocumentNotFound(id)
			}
			return nil, fmt.Errorf("failed to resolve document: %w", err)
		}
		if document.ProjectID != project.ID {
			return nil, NewErrDocumentNotFound(id)
		}
		documents = append(documents, *document)
	}

	job, err := s.store.ExportJob().Create(ctx, form.ToExportJob())
	if err != nil {
		return nil, fmt.Errorf("failed to create export job: %w", err)
	}

	metrics.ObserveExportBatchSizeMetric(job.TotalDocuments)
	s.writeEvent(ctx, events.ExportJobCreatedKind, job)
	logger.Infow("export job created",
		"job_id", job.ID,
		"project_id", job.ProjectID,
		"integration_type", job.IntegrationType,
		"total_documents", job.TotalDocuments,
	)

	// the processing phase outlives the request; it owns the job from
	// here on and runs to a terminal state exactly once
	go s.processExport(context.Background(), job.ID, *project, *integration, documents, job.ExportFormat)

	return job, nil
}

func (s *ExportService) GetJob(ctx context.Context, id uuid.UUID) (*model.ExportJob, error) {
	job, err := s.store.ExportJob().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrExportJobNotFound(id)
		}
		return nil, fmt.Errorf("failed to get export job: %w", err)
	}
	return job, nil
}

// ExportJobFilter narrows ListJobs; the zero value lists everything.
type ExportJobFilter struct {
	ProjectID string
}

func (s *ExportService) ListJobs(ctx context.Context, filter *ExportJobFilter) (model.ExportJobList, error) {
	storeFilter := store.NewExportJobQueryFilter()
	if filter != nil && filter.ProjectID != "" {
		storeFilter = storeFilter.ByProjectID(filter.ProjectID)
	}

	jobs, err := s.store.ExportJob().List(ctx, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list export jobs: %w", err)
	}
	return jobs, nil
}

// processExport drives one job from pending to a terminal state. A
// per-document failure is recorded and the batch continues; only
// adapter setup or store failures abort the job.
func (s *ExportService) processExport(ctx context.Context, jobID uuid.UUID, project model.Project, integration model.Integration, documents []model.Document, format string) {
	logger := zap.S().Named("export_executor").With("job_id", jobID)

	processing := model.JobStatusProcessing
	startedAt := time.Now().UnixMilli()
	if _, err := s.store.ExportJob().Update(ctx, jobID, store.ExportJobUpdate{
		Status:    &processing,
		StartedAt: &startedAt,
	}); err != nil {
		logger.Errorw("failed to transition job to processing", "error", err)
		s.failJob(ctx, jobID, project, integration, err)
		return
	}

	adapter, err := s.registry.Get(integration.Type)
	if err != nil {
		s.failJob(ctx, jobID, project, integration, err)
		return
	}

	opts := transport.Options{
		BatchLabel: fmt.Sprintf("%s export %s", project.Name, time.Now().Format("2006-01-02 15:04:05")),
		Timeout:    s.adapterTimeout,
	}
	batch, err := adapter.PrepareBatch(ctx, documents, &project, &integration, opts)
	if err != nil {
		s.failJob(ctx, jobID, project, integration, err)
		return
	}

	total := len(documents)
	results := make([]model.ExportResult, 0, total)
	exportedURLs := make([]string, 0, total)

	for i, document := range documents {
		result := adapter.ExportOne(ctx, document, &project, &integration, format, batch)
		results = append(results, result)
		if result.Status == model.ResultStatusSuccess {
			exportedURLs = append(exportedURLs, result.ExportedURL)
		}
		metrics.IncreaseDocumentsExportedTotalMetric(result.Status, integration.Type)

		processed := i + 1
		progress := computeProgress(processed, total)
		if _, err := s.store.ExportJob().Update(ctx, jobID, store.ExportJobUpdate{
			Progress:           &progress,
			ProcessedDocuments: &processed,
			ExportResults:      results,
		}); err != nil {
			logger.Errorw("failed to persist progress", "error", err, "processed", processed)
			s.failJob(ctx, jobID, project, integration, err)
			return
		}
	}

	completed := model.JobStatusCompleted
	completedAt := time.Now().UnixMilli()
	job, err := s.store.ExportJob().Update(ctx, jobID, store.ExportJobUpdate{
		Status:       &completed,
		CompletedAt:  &completedAt,
		ExportedURLs: exportedURLs,
	})
	if err != nil {
		logger.Errorw("failed to transition job to completed", "error", err)
		s.failJob(ctx, jobID, project, integration, err)
		return
	}

	metrics.IncreaseExportJobsTotalMetric(model.JobStatusCompleted, integration.Type)
	s.writeEvent(ctx, events.ExportJobCompletedKind, job)
	logger.Infow("export job completed",
		"processed_documents", job.ProcessedDocuments,
		"exported_urls", len(exportedURLs),
	)
}

// failJob moves the job to the failed terminal state. Documents not
// yet processed stay unprocessed; that is a legal terminal state.
func (s *ExportService) failJob(ctx context.Context, jobID uuid.UUID, project model.Project, integration model.Integration, cause error) {
	logger := zap.S().Named("export_executor").With("job_id", jobID)

	failed := model.JobStatusFailed
	errorMessage := cause.Error()
	completedAt := time.Now().UnixMilli()
	job, err := s.store.ExportJob().Update(ctx, jobID, store.ExportJobUpdate{
		Status:       &failed,
		ErrorMessage: &errorMessage,
		CompletedAt:  &completedAt,
	})
	if err != nil {
		// nothing left to do but log; the job stays in its last
		// persisted state
		logger.Errorw("failed to record job failure", "error", err, "cause", cause)
		return
	}

	metrics.IncreaseExportJobsTotalMetric(model.JobStatusFailed, integration.Type)
	s.writeEvent(ctx, events.ExportJobFailedKind, job)
	logger.Warnw("export job failed", "cause", cause)
}

func (s *ExportService) writeEvent(ctx context.Context, kind string, job *model.ExportJob) {
	if s.eventProducer == nil {
		return
	}
	event := events.ExportJobEvent{
		JobID:           job.ID.String(),
		ProjectID:       job.ProjectID.String(),
		IntegrationType: job.IntegrationType,
		Status:          job.Status,
		TotalDocuments:  job.TotalDocuments,
		Processed:       job.ProcessedDocuments,
		Error:           job.ErrorMessage,
	}
	if err := s.eventProducer.WriteExportJobEvent(ctx, kind, event); err != nil {
		zap.S().Named("export_service").Errorw("failed to write event", "error", err, "kind", kind)
	}
}

func computeProgress(processed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(processed) / float64(total) * 100))
}
