package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	// maxImageSize limits uploads to 5MB, matching the request body cap
	// on the create endpoint
	maxImageSize = 5 * 1024 * 1024
)

// httpStore uploads images to an external media server over HTTP.
// The server stores the bytes and answers with a stable URL plus an
// opaque asset id used for later deletion.
type httpStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a media store backed by the media server at baseURL
func NewHTTPStore(baseURL string) Store {
	return &httpStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		// 30s to handle large images on slow links; uploads block the
		// request, so the cap keeps a stuck media server from pinning
		// connections indefinitely
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Upload stores raw image bytes on the media server.
// Flow:
// 1. Validate size and MIME type (sniffed from the bytes)
// 2. POST multipart body to {baseURL}/upload
// 3. Parse {url, id} response into an Asset
func (s *httpStore) Upload(ctx context.Context, data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if len(data) > maxImageSize {
		return nil, &UploadError{Message: fmt.Sprintf("image size %d bytes exceeds maximum of %d bytes", len(data), maxImageSize)}
	}

	mimeType := http.DetectContentType(data)
	if !isValidMimeType(mimeType) {
		return nil, &UploadError{Message: fmt.Sprintf("unsupported MIME type: %s (allowed: image/jpeg, image/png, image/webp, image/gif)", mimeType)}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "image")
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Warning: failed to close media server response body: %v", closeErr)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read media server response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		preview := string(respBody)
		if len(preview) > 200 {
			preview = preview[:200] + "... (truncated)"
		}
		return nil, &UploadError{StatusCode: resp.StatusCode, Message: preview}
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to parse media server response: %w", err)
	}
	if uploaded.URL == "" || uploaded.ID == "" {
		return nil, &UploadError{Message: "media server response missing url or id"}
	}

	return &Asset{URL: uploaded.URL, ID: uploaded.ID}, nil
}

// Delete removes an asset by id. Callers treat failures as best-effort;
// the error is returned so they can log it with context.
func (s *httpStore) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return fmt.Errorf("asset id cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/assets/"+assetID, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("media delete request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Warning: failed to close media server response body: %v", closeErr)
		}
	}()

	// 404 counts as deleted: the asset is gone either way
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media delete failed: HTTP %d", resp.StatusCode)
	}

	return nil
}

// isValidMimeType checks if the sniffed MIME type is an allowed image format
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}
