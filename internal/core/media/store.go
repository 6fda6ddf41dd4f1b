package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Asset identifies an uploaded image on the media server.
// The ID is captured at upload time so deletes never need to re-derive
// it from the URL.
type Asset struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Store defines the interface between the post service and the external
// media server. Upload failures are fatal to the calling operation;
// Delete is fire-and-forget from the caller's perspective.
type Store interface {
	// Upload stores raw image bytes and returns the stable URL and asset id
	Upload(ctx context.Context, data []byte) (*Asset, error)

	// Delete removes an asset by its id
	Delete(ctx context.Context, assetID string) error
}

// DecodePayload decodes an inline image payload from a request body.
// Accepts both a bare base64 string and a data URI
// (data:image/png;base64,...), which is what browser file readers produce.
func DecodePayload(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("image payload cannot be empty")
	}

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URI: missing comma separator")
		}
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image payload cannot be empty")
	}

	return data, nil
}

// DeriveAssetID recovers an asset id from a media URL by stripping the
// trailing path segment's extension. Kept only as a fallback for posts
// that predate the stored image_id column; query strings are trimmed
// first so they never leak into the derived id.
func DeriveAssetID(url string) string {
	if url == "" {
		return ""
	}

	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		url = url[:idx]
	}

	segment := url
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		segment = url[idx+1:]
	}

	if idx := strings.LastIndex(segment, "."); idx > 0 {
		segment = segment[:idx]
	}

	return segment
}
