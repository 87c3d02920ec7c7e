package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the largest accepted upload, 4MB.
const MaxImageSize = 4 << 20

// Upload describes an image hosted on the media CDN.
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Uploader stores image bytes on the CDN and returns the hosted URL.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*Upload, error)
}

var (
	// ErrEmptyFile is returned for zero-byte uploads
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge is returned when the upload exceeds MaxImageSize
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrUnsupportedType is returned for non-image MIME types
	ErrUnsupportedType = errors.New("unsupported image type")
)

// IsValidationError reports whether err is a client input problem.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedType)
}

// UploadError wraps a failure reported by the CDN
type UploadError struct {
	Message    string
	StatusCode int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media CDN error (%d): %s", e.StatusCode, e.Message)
}

// normalizeMimeType maps aliases and strips parameters
// (image/jpg; charset=binary -> image/jpeg).
func normalizeMimeType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	switch mimeType {
	case "image/jpg":
		return "image/jpeg"
	default:
		return mimeType
	}
}

// isValidMimeType checks if the MIME type is allowed for image uploads
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}
