package media

import (
	"errors"
	"fmt"
)

// ErrEmptyData is returned when an upload is attempted with no bytes
var ErrEmptyData = errors.New("image data cannot be empty")

// UploadError wraps a media server failure during upload.
// Treated as fatal by callers: a post is never created without its
// requested image.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("media upload failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("media upload failed: %s", e.Message)
}

// IsUploadError checks if error is a media upload failure
func IsUploadError(err error) bool {
	var uploadErr *UploadError
	return errors.As(err, &uploadErr)
}
