package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/apatilgtn/Kairos-isdp-sub001/api/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/config"
	handlers "github.com/apatilgtn/Kairos-isdp-sub001/internal/handlers/v1alpha1"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

// stubAdapter accepts every document.
type stubAdapter struct{}

func (stubAdapter) PrepareBatch(_ context.Context, _ []model.Document, _ *model.Project, _ *model.Integration, _ transport.Options) (transport.BatchContext, error) {
	return "batch", nil
}

func (stubAdapter) ExportOne(_ context.Context, document model.Document, _ *model.Project, _ *model.Integration, _ string, _ transport.BatchContext) model.ExportResult {
	return transport.SuccessResult(document, "https://remote.example.com/"+document.ID.String(), 1)
}

var _ = Describe("export handlers", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router *chi.Mux

		project     *model.Project
		integration *model.Integration
		document    *model.Document
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		registry := transport.NewRegistry()
		registry.Register("confluence", stubAdapter{})
		srv := service.NewExportService(s, registry, nil, time.Second)
		h := handlers.NewServiceHandler(srv)

		router = chi.NewRouter()
		router.Post("/api/v1alpha1/exports", h.CreateExport)
		router.Get("/api/v1alpha1/exports", h.ListExports)
		router.Get("/api/v1alpha1/exports/{id}", h.GetExport)
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		var err error
		project, err = s.Project().Create(context.TODO(), model.Project{ID: uuid.New(), Name: "atlas"})
		Expect(err).To(BeNil())

		integration, err = s.Integration().Create(context.TODO(), model.Integration{
			ID:        uuid.New(),
			ProjectID: project.ID,
			Type:      "confluence",
			Name:      "wiki",
			Config: model.MakeJSONField(model.IntegrationConfig{
				BaseURL:  "https://wiki.example.com",
				Token:    "token",
				SpaceKey: "ATLAS",
			}),
		})
		Expect(err).To(BeNil())

		document, err = s.Document().Create(context.TODO(), model.Document{
			ID:           uuid.New(),
			ProjectID:    project.ID,
			DocumentType: "business_case",
			Title:        "Business Case",
			Content:      "body",
		})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM export_jobs;")
		gormdb.Exec("DELETE FROM documents;")
		gormdb.Exec("DELETE FROM integrations;")
		gormdb.Exec("DELETE FROM projects;")
	})

	createBody := func() api.ExportJobCreate {
		return api.ExportJobCreate{
			ProjectID:       project.ID.String(),
			DocumentIDs:     []string{document.ID.String()},
			IntegrationID:   integration.ID.String(),
			IntegrationType: api.IntegrationTypeConfluence,
			ExportFormat:    api.ExportFormatMarkdown,
		}
	}

	post := func(body any) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		Expect(err).To(BeNil())
		req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/exports", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	Context("create export", func() {
		It("returns 201 with the pending job", func() {
			resp := post(createBody())
			Expect(resp.Code).To(Equal(http.StatusCreated))

			var job api.ExportJob
			Expect(json.NewDecoder(resp.Body).Decode(&job)).To(Succeed())
			Expect(job.ID).NotTo(BeEmpty())
			Expect(job.Status).To(Equal(api.JobStatusPending))
			Expect(job.TotalDocuments).To(Equal(1))
			Expect(job.DocumentIDs).To(Equal([]string{document.ID.String()}))
		})

		It("returns 400 on a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/exports", bytes.NewReader([]byte("{not json")))
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on a malformed document id", func() {
			body := createBody()
			body.DocumentIDs = []string{"not-a-uuid"}
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on an empty batch", func() {
			body := createBody()
			body.DocumentIDs = []string{}
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))

			var apiErr api.Error
			Expect(json.NewDecoder(resp.Body).Decode(&apiErr)).To(Succeed())
			Expect(apiErr.Message).To(ContainSubstring("DocumentIDs"))
		})

		It("returns 400 on an unknown integration type", func() {
			body := createBody()
			body.IntegrationType = "teams"
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on an unknown export format", func() {
			body := createBody()
			body.ExportFormat = "latex"
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown project", func() {
			body := createBody()
			body.ProjectID = uuid.NewString()
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 404 for an unknown integration", func() {
			body := createBody()
			body.IntegrationID = uuid.NewString()
			resp := post(body)
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("get export", func() {
		It("returns the job by id", func() {
			created := post(createBody())
			Expect(created.Code).To(Equal(http.StatusCreated))

			var job api.ExportJob
			Expect(json.NewDecoder(created.Body).Decode(&job)).To(Succeed())

			resp := get("/api/v1alpha1/exports/" + job.ID)
			Expect(resp.Code).To(Equal(http.StatusOK))

			var fetched api.ExportJob
			Expect(json.NewDecoder(resp.Body).Decode(&fetched)).To(Succeed())
			Expect(fetched.ID).To(Equal(job.ID))
		})

		It("returns 400 for a malformed id", func() {
			resp := get("/api/v1alpha1/exports/not-a-uuid")
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown id", func() {
			resp := get("/api/v1alpha1/exports/" + uuid.NewString())
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("list exports", func() {
		It("lists jobs for a project", func() {
			Expect(post(createBody()).Code).To(Equal(http.StatusCreated))
			Expect(post(createBody()).Code).To(Equal(http.StatusCreated))

			resp := get(fmt.Sprintf("/api/v1alpha1/exports?project_id=%s", project.ID))
			Expect(resp.Code).To(Equal(http.StatusOK))

			var jobs api.ExportJobList
			Expect(json.NewDecoder(resp.Body).Decode(&jobs)).To(Succeed())
			Expect(jobs).To(HaveLen(2))
		})

		It("returns 400 for a malformed project id filter", func() {
			resp := get("/api/v1alpha1/exports?project_id=nope")
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
