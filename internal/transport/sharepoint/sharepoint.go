package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
)

// Adapter delivers documents to a SharePoint-style document library.
// Every batch gets its own folder, created in PrepareBatch; each
// document is uploaded as one file into that folder.
type Adapter struct {
	httpClient *http.Client
}

// Make sure we conform to the transport adapter interface
var _ transport.Adapter = (*Adapter)(nil)

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Adapter{
		httpClient: &http.Client{Timeout: timeout},
	}
}

type batchContext struct {
	FolderID  string
	FolderURL string
}

type createFolderRequest struct {
	Name string `json:"name"`
}

type createFolderResponse struct {
	ID     string `json:"id"`
	WebURL string `json:"web_url"`
}

type uploadFileRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type uploadFileResponse struct {
	WebURL string `json:"web_url"`
	Size   int64  `json:"size"`
}

func (a *Adapter) PrepareBatch(ctx context.Context, documents []model.Document, project *model.Project, integration *model.Integration, opts transport.Options) (transport.BatchContext, error) {
	cfg, err := validateConfig(integration)
	if err != nil {
		return nil, err
	}

	var folder createFolderResponse
	path := fmt.Sprintf("/api/sites/%s/libraries/%s/folders", cfg.SiteID, cfg.LibraryName)
	if err := a.do(ctx, cfg, http.MethodPost, path, createFolderRequest{Name: opts.BatchLabel}, &folder); err != nil {
		return nil, fmt.Errorf("creating destination folder: %w", err)
	}

	return &batchContext{FolderID: folder.ID, FolderURL: folder.WebURL}, nil
}

func (a *Adapter) ExportOne(ctx context.Context, document model.Document, project *model.Project, integration *model.Integration, format string, batch transport.BatchContext) model.ExportResult {
	cfg, err := validateConfig(integration)
	if err != nil {
		return transport.FailureResult(document, err)
	}

	bc, ok := batch.(*batchContext)
	if !ok {
		return transport.FailureResult(document, errors.New("missing batch context"))
	}

	upload := uploadFileRequest{
		FileName:    transport.FileName(document.Title, format),
		ContentType: transport.ContentType(format),
		Content:     document.Content,
	}

	var uploaded uploadFileResponse
	path := fmt.Sprintf("/api/sites/%s/libraries/%s/folders/%s/files", cfg.SiteID, cfg.LibraryName, bc.FolderID)
	if err := a.do(ctx, cfg, http.MethodPost, path, upload, &uploaded); err != nil {
		return transport.FailureResult(document, err)
	}

	size := uploaded.Size
	if size == 0 {
		size = int64(len(document.Content))
	}
	return transport.SuccessResult(document, uploaded.WebURL, size)
}

func (a *Adapter) do(ctx context.Context, cfg *model.IntegrationConfig, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.Token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sharepoint returned %d: %s", resp.StatusCode, string(msg))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func validateConfig(integration *model.Integration) (*model.IntegrationConfig, error) {
	if integration.Config == nil {
		return nil, errors.New("integration has no configuration")
	}
	cfg := &integration.Config.Data
	if cfg.BaseURL == "" {
		return nil, errors.New("integration configuration has no base url")
	}
	if cfg.SiteID == "" {
		return nil, errors.New("integration configuration has no site id")
	}
	if cfg.LibraryName == "" {
		return nil, errors.New("integration configuration has no library name")
	}
	return cfg, nil
}
