package v1alpha1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/apatilgtn/Kairos-isdp-sub001/api/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/handlers/validator"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service/mappers"
	"github.com/apatilgtn/Kairos-isdp-sub001/pkg/requestid"
)

// CreateExport handles POST /api/v1alpha1/exports.
func (h *ServiceHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("export_handler")
	ctx := r.Context()

	var body api.ExportJobCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		renderError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request body: %v", err))
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewExportValidationRules()...)
	if err := v.Struct(body); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	form, err := mappers.ExportJobFormFromApi(body)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.exportSrv.StartExport(ctx, form)
	if err != nil {
		var notFound *service.ErrResourceNotFound
		var emptyBatch *service.ErrEmptyBatch
		var typeMismatch *service.ErrIntegrationTypeMismatch
		switch {
		case errors.As(err, &notFound):
			renderError(w, r, http.StatusNotFound, err.Error())
		case errors.As(err, &emptyBatch), errors.As(err, &typeMismatch):
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.Errorw("failed to start export", "error", err)
			renderError(w, r, http.StatusInternalServerError, "failed to start export")
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.ExportJobToApi(job))
}

// GetExport handles GET /api/v1alpha1/exports/{id}.
func (h *ServiceHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid job id: %v", err))
		return
	}

	job, err := h.exportSrv.GetJob(r.Context(), id)
	if err != nil {
		var notFound *service.ErrResourceNotFound
		if errors.As(err, &notFound) {
			renderError(w, r, http.StatusNotFound, err.Error())
			return
		}
		zap.S().Named("export_handler").Errorw("failed to get export job", "error", err, "job_id", id)
		renderError(w, r, http.StatusInternalServerError, "failed to get export job")
		return
	}

	render.JSON(w, r, mappers.ExportJobToApi(job))
}

// ListExports handles GET /api/v1alpha1/exports with an optional
// project_id query parameter.
func (h *ServiceHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	filter := &service.ExportJobFilter{}
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		if _, err := uuid.Parse(projectID); err != nil {
			renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid project id: %v", err))
			return
		}
		filter.ProjectID = projectID
	}

	jobs, err := h.exportSrv.ListJobs(r.Context(), filter)
	if err != nil {
		zap.S().Named("export_handler").Errorw("failed to list export jobs", "error", err)
		renderError(w, r, http.StatusInternalServerError, "failed to list export jobs")
		return
	}

	render.JSON(w, r, mappers.ExportJobListToApi(jobs))
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}
