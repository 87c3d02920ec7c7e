package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Service validates and forwards image uploads to the CDN.
type Service interface {
	Upload(ctx context.Context, uploaderID string, r io.Reader, filename, mimeType string) (*Upload, error)
}

type mediaService struct {
	uploader Uploader
	logger   *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(uploader Uploader, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &mediaService{uploader: uploader, logger: logger}
}

// Upload reads at most MaxImageSize bytes, checks the type, and uploads.
// When mimeType is empty it is sniffed from the content.
func (s *mediaService) Upload(ctx context.Context, uploaderID string, r io.Reader, filename, mimeType string) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, MaxImageSize)
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	mimeType = normalizeMimeType(mimeType)
	if !isValidMimeType(mimeType) {
		return nil, fmt.Errorf("%w: %s (allowed: image/jpeg, image/png, image/webp, image/gif)", ErrUnsupportedType, mimeType)
	}

	upload, err := s.uploader.UploadImage(ctx, data, filename, mimeType)
	if err != nil {
		s.logger.Error("failed to upload image",
			"error", err,
			"uploader", uploaderID,
			"size", len(data),
			"mime_type", mimeType)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("image uploaded",
		"uploader", uploaderID,
		"public_id", upload.PublicID,
		"size", len(data))
	return upload, nil
}
