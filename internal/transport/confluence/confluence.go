package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/store/model"
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/transport"
)

// Adapter delivers documents to a Confluence-style wiki. PrepareBatch
// creates an index page for the batch; each document becomes a child
// page under it.
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
	IndexPageID string
}

type pageBody struct {
	Storage storageBody `json:"storage"`
}

type storageBody struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type createPageRequest struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Space     spaceRef  `json:"space"`
	Ancestors []pageRef `json:"ancestors,omitempty"`
	Body      pageBody  `json:"body"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type pageRef struct {
	ID string `json:"id"`
}

type createPageResponse struct {
	ID    string    `json:"id"`
	Links pageLinks `json:"_links"`
}

type pageLinks struct {
	Base  string `json:"base"`
	WebUI string `json:"webui"`
}

func (a *Adapter) PrepareBatch(ctx context.Context, documents []model.Document, project *model.Project, integration *model.Integration, opts transport.Options) (transport.BatchContext, error) {
	cfg, err := validateConfig(integration)
	if err != nil {
		return nil, err
	}

	index := createPageRequest{
		Type:  "page",
		Title: opts.BatchLabel,
		Space: spaceRef{Key: cfg.SpaceKey},
		Body: pageBody{
			Storage: storageBody{
				Value:          fmt.Sprintf("<p>Documents exported from project %s.</p>", project.Name),
				Representation: "storage",
			},
		},
	}

	var created createPageResponse
	if err := a.do(ctx, cfg, index, &created); err != nil {
		return nil, fmt.Errorf("creating index page: %w", err)
	}

	return &batchContext{IndexPageID: created.ID}, nil
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

	page := createPageRequest{
		Type:      "page",
		Title:     document.Title,
		Space:     spaceRef{Key: cfg.SpaceKey},
		Ancestors: []pageRef{{ID: bc.IndexPageID}},
		Body: pageBody{
			Storage: storageBody{
				Value:          renderBody(document, format),
				Representation: "storage",
			},
		},
	}

	var created createPageResponse
	if err := a.do(ctx, cfg, page, &created); err != nil {
		return transport.FailureResult(document, err)
	}

	base := created.Links.Base
	if base == "" {
		base = cfg.BaseURL
	}
	return transport.SuccessResult(document, base+created.Links.WebUI, int64(len(document.Content)))
}

// renderBody wraps the document content for Confluence's storage
// representation. HTML content passes through unchanged, everything
// else ships preformatted.
func renderBody(document model.Document, format string) string {
	if format == "html" {
		return document.Content
	}
	return "<pre>" + html.EscapeString(document.Content) + "</pre>"
}

func (a *Adapter) do(ctx context.Context, cfg *model.IntegrationConfig, body createPageRequest, out *createPageResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/rest/api/content", bytes.NewReader(payload))
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
		return fmt.Errorf("confluence returned %d: %s", resp.StatusCode, string(msg))
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
	if cfg.SpaceKey == "" {
		return nil, errors.New("integration configuration has no space key")
	}
	return cfg, nil
}
