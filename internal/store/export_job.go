package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// ExportJobUpdate names the fields a partial update may touch. Nil
// pointers (and nil slices) leave the column untouched; the executor
// relies on this to persist progress without rewriting the whole row.
type ExportJobUpdate struct {
	Status             *string
	Progress           *int
	ProcessedDocuments *int
	ExportResults      []model.ExportResult
	ErrorMessage       *string
	StartedAt          *int64
	CompletedAt        *int64
	ExportedURLs       []string
}

// ExportJob interface for export-job database operations
type ExportJob interface {
	Create(ctx context.Context, job model.ExportJob) (*model.ExportJob, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ExportJob, error)
	Update(ctx context.Context, id uuid.UUID, update ExportJobUpdate) (*model.ExportJob, error)
	List(ctx context.Context, filter *ExportJobQueryFilter) (model.ExportJobList, error)
}

type ExportJobStore struct {
	db *gorm.DB
}

// Make sure we conform to ExportJob interface
var _ ExportJob = (*ExportJobStore)(nil)

func NewExportJobStore(db *gorm.DB) ExportJob {
	return &ExportJobStore{db: db}
}

func (s *ExportJobStore) Create(ctx context.Context, job model.ExportJob) (*model.ExportJob, error) {
	result := s.getDB(ctx).Create(&job)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("creating export job: %w", result.Error)
	}
	return &job, nil
}

func (s *ExportJobStore) Get(ctx context.Context, id uuid.UUID) (*model.ExportJob, error) {
	var job model.ExportJob
	result := s.getDB(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying export job: %w", result.Error)
	}
	return &job, nil
}

// Update applies only the fields set on the update in a single UPDATE
// statement, so concurrent readers observe either the prior or the new
// snapshot, never a torn write.
func (s *ExportJobStore) Update(ctx context.Context, id uuid.UUID, update ExportJobUpdate) (*model.ExportJob, error) {
	job := model.ExportJob{ID: id}
	selectFields := []string{}

	if update.Status != nil {
		job.Status = *update.Status
		selectFields = append(selectFields, "status")
	}
	if update.Progress != nil {
		job.Progress = *update.Progress
		selectFields = append(selectFields, "progress")
	}
	if update.ProcessedDocuments != nil {
		job.ProcessedDocuments = *update.ProcessedDocuments
		selectFields = append(selectFields, "processed_documents")
	}
	if update.ExportResults != nil {
		job.ExportResults = model.MakeJSONField(update.ExportResults)
		selectFields = append(selectFields, "export_results")
	}
	if update.ErrorMessage != nil {
		job.ErrorMessage = *update.ErrorMessage
		selectFields = append(selectFields, "error_message")
	}
	if update.StartedAt != nil {
		job.StartedAt = *update.StartedAt
		selectFields = append(selectFields, "started_at")
	}
	if update.CompletedAt != nil {
		job.CompletedAt = *update.CompletedAt
		selectFields = append(selectFields, "completed_at")
	}
	if update.ExportedURLs != nil {
		job.ExportedURLs = model.MakeJSONField(update.ExportedURLs)
		selectFields = append(selectFields, "exported_urls")
	}

	if len(selectFields) == 0 {
		return s.Get(ctx, id)
	}

	result := s.getDB(ctx).Model(&job).Select(selectFields).Updates(&job)
	if result.Error != nil {
		return nil, fmt.Errorf("updating export job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(ctx, id)
}

func (s *ExportJobStore) List(ctx context.Context, filter *ExportJobQueryFilter) (model.ExportJobList, error) {
	var jobs model.ExportJobList
	tx := s.getDB(ctx).Model(&jobs).Order("created_at DESC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (s *ExportJobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
