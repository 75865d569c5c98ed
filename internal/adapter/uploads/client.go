package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// Client exposes operations against the media object store.
type Client interface {
	Upload(ctx context.Context, folder, data string) (*model.Attachment, error)
}

// HTTPClient implements Client via the object store HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// uploadRequest mirrors the JSON payload accepted by the store. File carries
// a data URI or remote URL, the same forms the storefront submits.
type uploadRequest struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
}

// uploadResponse mirrors the JSON payload returned by the store.
type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// NewHTTPClient creates an HTTP object store client.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse uploads url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("uploads url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload stores the payload under folder and returns the public reference.
func (c *HTTPClient) Upload(ctx context.Context, folder, data string) (*model.Attachment, error) {
	if data == "" {
		return nil, fmt.Errorf("upload payload is empty")
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/image/upload")

	payload, err := json.Marshal(uploadRequest{Folder: folder, File: data})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("upload request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("uploads error: %s", resp.Status)
	}

	var stored uploadResponse
	if err := json.Unmarshal(body, &stored); err != nil {
		return nil, err
	}
	return &model.Attachment{PublicID: stored.PublicID, URL: stored.SecureURL}, nil
}
