package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
)

// BatchContext carries per-job adapter state (destination folder, index
// page) between PrepareBatch and the ExportOne calls of the same job.
// Its concrete type is owned by the adapter that produced it.
type BatchContext any

// Options are per-job adapter settings supplied by the executor.
type Options struct {
	// BatchLabel names the destination container for the batch
	// (folder name, index page title).
	BatchLabel string
	Timeout    time.Duration
}

// Adapter delivers documents to one integration type. Implementations
// are stateless across calls within a job except through BatchContext.
//
// ExportOne deliberately returns a result instead of an error: an
// ordinary delivery failure (expired auth, remote quota, malformed
// content, timeout) must surface as a failed ExportResult and must not
// abort the batch. Only PrepareBatch may fail, and only for
// unrecoverable configuration problems; the executor treats such a
// failure as job-level.
type Adapter interface {
	PrepareBatch(ctx context.Context, documents []model.Document, project *model.Project, integration *model.Integration, opts Options) (BatchContext, error)
	ExportOne(ctx context.Context, document model.Document, project *model.Project, integration *model.Integration, format string, batch BatchContext) model.ExportResult
}

// Registry resolves the adapter for an integration type.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(integrationType string, adapter Adapter) {
	r.adapters[integrationType] = adapter
}

func (r *Registry) Get(integrationType string) (Adapter, error) {
	adapter, ok := r.adapters[integrationType]
	if !ok {
		return nil, fmt.Errorf("no transport adapter registered for integration type %q", integrationType)
	}
	return adapter, nil
}

// SuccessResult builds the per-document result for a delivered document.
func SuccessResult(document model.Document, exportedURL string, fileSize int64) model.ExportResult {
	return model.ExportResult{
		DocumentID:   document.ID.String(),
		DocumentType: document.DocumentType,
		Status:       model.ResultStatusSuccess,
		ExportedURL:  exportedURL,
		FileSize:     fileSize,
		ExportTime:   time.Now().UnixMilli(),
	}
}

// FailureResult builds the per-document result for a failed delivery.
func FailureResult(document model.Document, err error) model.ExportResult {
	return model.ExportResult{
		DocumentID:   document.ID.String(),
		DocumentType: document.DocumentType,
		Status:       model.ResultStatusFailed,
		ErrorMessage: err.Error(),
		ExportTime:   time.Now().UnixMilli(),
	}
}
