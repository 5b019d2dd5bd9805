package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
)

func newIntegration(baseURL string) *model.Integration {
	return &model.Integration{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Type:      "confluence",
		Name:      "team wiki",
		Config: model.MakeJSONField(model.IntegrationConfig{
			BaseURL:  baseURL,
			Token:    "cf-token",
			SpaceKey: "ATLAS",
		}),
	}
}

func newDocument(title, content string) model.Document {
	return model.Document{
		ID:           uuid.New(),
		ProjectID:    uuid.New(),
		DocumentType: "feasibility_study",
		Title:        title,
		Content:      content,
	}
}

func TestPrepareBatchCreatesIndexPage(t *testing.T) {
	var got createPageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/content", r.URL.Path)
		assert.Equal(t, "Bearer cf-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		fmt.Fprint(w, `{"id": "1001", "_links": {"base": "https://wiki.example.com", "webui": "/pages/1001"}}`)
	}))
	defer server.Close()

	adapter := NewAdapter(time.Second)
	batch, err := adapter.PrepareBatch(context.TODO(), nil, &model.Project{Name: "atlas"}, newIntegration(server.URL), transport.Options{BatchLabel: "atlas export"})
	require.NoError(t, err)

	assert.Equal(t, "page", got.Type)
	assert.Equal(t, "atlas export", got.Title)
	assert.Equal(t, "ATLAS", got.Space.Key)
	assert.Empty(t, got.Ancestors)

	bc, ok := batch.(*batchContext)
	require.True(t, ok)
	assert.Equal(t, "1001", bc.IndexPageID)
}

func TestPrepareBatchConfigValidation(t *testing.T) {
	adapter := NewAdapter(time.Second)

	integration := newIntegration("https://wiki.example.com")
	integration.Config.Data.SpaceKey = ""

	_, err := adapter.PrepareBatch(context.TODO(), nil, &model.Project{}, integration, transport.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "space key")
}

func TestExportOneCreatesChildPage(t *testing.T) {
	document := newDocument("Feasibility Study", "plain <text>")

	var got createPageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"id": "1002", "_links": {"base": "https://wiki.example.com", "webui": "/pages/1002"}}`)
	}))
	defer server.Close()

	adapter := NewAdapter(time.Second)
	result := adapter.ExportOne(context.TODO(), document, &model.Project{}, newIntegration(server.URL), "markdown", &batchContext{IndexPageID: "1001"})

	assert.Equal(t, model.ResultStatusSuccess, result.Status)
	assert.Equal(t, "https://wiki.example.com/pages/1002", result.ExportedURL)

	require.Len(t, got.Ancestors, 1)
	assert.Equal(t, "1001", got.Ancestors[0].ID)
	assert.Equal(t, "Feasibility Study", got.Title)
	// non-html content ships preformatted with markup escaped
	assert.Equal(t, "<pre>plain &lt;text&gt;</pre>", got.Body.Storage.Value)
}

func TestExportOneHTMLPassthrough(t *testing.T) {
	document := newDocument("Report", "<h1>Report</h1>")

	var got createPageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"id": "1003", "_links": {"base": "https://wiki.example.com", "webui": "/pages/1003"}}`)
	}))
	defer server.Close()

	adapter := NewAdapter(time.Second)
	result := adapter.ExportOne(context.TODO(), document, &model.Project{}, newIntegration(server.URL), "html", &batchContext{IndexPageID: "1001"})

	assert.Equal(t, model.ResultStatusSuccess, result.Status)
	assert.Equal(t, "<h1>Report</h1>", got.Body.Storage.Value)
}

func TestExportOneDeliveryFailureBecomesFailedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "space is archived", http.StatusConflict)
	}))
	defer server.Close()

	document := newDocument("Doc", "body")
	adapter := NewAdapter(time.Second)
	result := adapter.ExportOne(context.TODO(), document, &model.Project{}, newIntegration(server.URL), "markdown", &batchContext{IndexPageID: "1001"})

	assert.Equal(t, model.ResultStatusFailed, result.Status)
	assert.Contains(t, result.ErrorMessage, "space is archived")
	assert.Empty(t, result.ExportedURL)
}
